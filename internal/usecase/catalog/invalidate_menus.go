package catalog

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/catalog"
)

type InvalidateRestaurantMenus struct {
	store catalog.Store
	cache catalog.Invalidator
}

func NewInvalidateRestaurantMenus(
	store catalog.Store,
	cache catalog.Invalidator,
) *InvalidateRestaurantMenus {
	return &InvalidateRestaurantMenus{
		store: store,
		cache: cache,
	}
}

// Execute drops the cached public view of every menu under a restaurant.
// Restaurant fields (name, logo) are embedded in those views, so any
// restaurant mutation has to flush them.
func (uc *InvalidateRestaurantMenus) Execute(ctx context.Context, restaurantID string) error {
	menus, err := uc.store.FindMenusByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if len(menus) == 0 {
		return nil
	}

	keys := make([]string, 0, len(menus))
	for _, menu := range menus {
		keys = append(keys, cache.PublicMenuKey(menu.ID))
	}

	uc.cache.Delete(ctx, keys...)
	return nil
}
