package catalog

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/catalog"
)

type DeleteMenu struct {
	store catalog.Store
	cache catalog.Invalidator
}

func NewDeleteMenu(
	store catalog.Store,
	cache catalog.Invalidator,
) *DeleteMenu {
	return &DeleteMenu{
		store: store,
		cache: cache,
	}
}

// Execute removes a menu and its dishes, dishes first, then drops the
// cached public view.
func (uc *DeleteMenu) Execute(ctx context.Context, menuID string) error {
	if err := uc.store.DeleteDishesByMenu(ctx, menuID); err != nil {
		return err
	}

	if err := uc.store.DeleteMenu(ctx, menuID); err != nil {
		return err
	}

	uc.cache.Delete(ctx, cache.PublicMenuKey(menuID))
	return nil
}
