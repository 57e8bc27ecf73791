package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceqrpro/qrmenu-api/internal/cache"
)

func TestDeleteRestaurant_CascadesMenusAndDishes(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.seedRestaurant("rest-1", map[string]int{"menu-1": 2, "menu-2": 1})
	store.seedRestaurant("rest-2", map[string]int{"menu-3": 1})
	inv := &mockInvalidator{}

	uc := NewDeleteRestaurant(store, inv)
	require.NoError(t, uc.Execute(ctx, "rest-1"))

	assert.NotContains(t, store.restaurants, "rest-1")
	assert.Empty(t, store.menusOf("rest-1"), "no menu may survive its restaurant")
	assert.Empty(t, store.dishesOf("menu-1"))
	assert.Empty(t, store.dishesOf("menu-2"))

	// A sibling restaurant keeps its whole subtree.
	assert.Contains(t, store.restaurants, "rest-2")
	assert.Len(t, store.menusOf("rest-2"), 1)
	assert.Len(t, store.dishesOf("menu-3"), 1)

	assert.ElementsMatch(t, []string{
		cache.PublicMenuKey("menu-1"),
		cache.PublicMenuKey("menu-2"),
	}, inv.deleted)
}

func TestDeleteRestaurant_NoMenus(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.seedRestaurant("rest-1", nil)
	inv := &mockInvalidator{}

	uc := NewDeleteRestaurant(store, inv)
	require.NoError(t, uc.Execute(ctx, "rest-1"))

	assert.NotContains(t, store.restaurants, "rest-1")
	assert.Empty(t, inv.deleted)
}

func TestDeleteRestaurant_DishDeleteErrorStopsCascade(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.seedRestaurant("rest-1", map[string]int{"menu-1": 2})
	store.deleteDishesErr = errors.New("store down")
	inv := &mockInvalidator{}

	uc := NewDeleteRestaurant(store, inv)
	err := uc.Execute(ctx, "rest-1")

	assert.Error(t, err)
	assert.Contains(t, store.restaurants, "rest-1", "parent must survive a failed cascade")
	assert.Len(t, store.menusOf("rest-1"), 1)
	assert.Empty(t, inv.deleted, "no cache key may drop before the deletes land")
}

func TestDeleteRestaurant_MenuDeleteErrorKeepsRestaurant(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.seedRestaurant("rest-1", map[string]int{"menu-1": 1})
	store.deleteMenusErr = errors.New("store down")
	inv := &mockInvalidator{}

	uc := NewDeleteRestaurant(store, inv)
	err := uc.Execute(ctx, "rest-1")

	assert.Error(t, err)
	assert.Contains(t, store.restaurants, "rest-1")
	assert.Empty(t, inv.deleted)
}
