package catalog

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/catalog"
)

type DeleteRestaurant struct {
	store catalog.Store
	cache catalog.Invalidator
}

func NewDeleteRestaurant(
	store catalog.Store,
	cache catalog.Invalidator,
) *DeleteRestaurant {
	return &DeleteRestaurant{
		store: store,
		cache: cache,
	}
}

// Execute removes a restaurant together with every menu and dish under it.
// Children go first so a mid-cascade failure never orphans rows behind a
// deleted parent. Cached public views are dropped only once all deletes
// succeeded.
func (uc *DeleteRestaurant) Execute(ctx context.Context, restaurantID string) error {
	menus, err := uc.store.FindMenusByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(menus))
	for _, menu := range menus {
		if err := uc.store.DeleteDishesByMenu(ctx, menu.ID); err != nil {
			return err
		}
		keys = append(keys, cache.PublicMenuKey(menu.ID))
	}

	if err := uc.store.DeleteMenusByRestaurant(ctx, restaurantID); err != nil {
		return err
	}

	if err := uc.store.DeleteRestaurant(ctx, restaurantID); err != nil {
		return err
	}

	uc.cache.Delete(ctx, keys...)
	return nil
}
