// Package authz verifies that a requested restaurant, menu or dish is
// transitively owned by the calling user. Menus and dishes carry no owner
// field, ownership is always resolved by walking up to the restaurant.
package authz

import (
	"context"
	"errors"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

// ErrNotFound is returned both when a resource is missing and when it
// belongs to someone else. Collapsing the two keeps other users' resources
// unenumerable.
var ErrNotFound = errors.New("resource not found")

// Store is the read surface the guards need. Missing rows are (nil, nil),
// errors are reserved for store failures.
type Store interface {
	FindRestaurantByIDAndOwner(ctx context.Context, id, userID string) (*models.Restaurant, error)
	FindMenuByID(ctx context.Context, id string) (*models.Menu, error)
	FindDishByID(ctx context.Context, id string) (*models.Dish, error)
}

type Guard struct {
	store Store
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

func (g *Guard) Restaurant(ctx context.Context, user *models.User, restaurantID string) (*models.Restaurant, error) {
	restaurant, err := g.store.FindRestaurantByIDAndOwner(ctx, restaurantID, user.ID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrNotFound
	}
	return restaurant, nil
}

func (g *Guard) Menu(ctx context.Context, user *models.User, menuID string) (*models.Menu, *models.Restaurant, error) {
	menu, err := g.store.FindMenuByID(ctx, menuID)
	if err != nil {
		return nil, nil, err
	}
	if menu == nil {
		return nil, nil, ErrNotFound
	}

	restaurant, err := g.Restaurant(ctx, user, menu.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	return menu, restaurant, nil
}

func (g *Guard) Dish(ctx context.Context, user *models.User, dishID string) (*models.Dish, *models.Menu, *models.Restaurant, error) {
	dish, err := g.store.FindDishByID(ctx, dishID)
	if err != nil {
		return nil, nil, nil, err
	}
	if dish == nil {
		return nil, nil, nil, ErrNotFound
	}

	menu, restaurant, err := g.Menu(ctx, user, dish.MenuID)
	if err != nil {
		return nil, nil, nil, err
	}
	return dish, menu, restaurant, nil
}
