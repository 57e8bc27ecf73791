// Package catalog defines the write surface behind restaurant and menu
// cascades. Deletes are sequential per-table operations, a failure stops
// the cascade and leaves the parent row in place.
package catalog

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type Store interface {
	FindMenusByRestaurant(ctx context.Context, restaurantID string) ([]models.Menu, error)
	DeleteDishesByMenu(ctx context.Context, menuID string) error
	DeleteMenu(ctx context.Context, menuID string) error
	DeleteMenusByRestaurant(ctx context.Context, restaurantID string) error
	DeleteRestaurant(ctx context.Context, restaurantID string) error
}

// Invalidator drops cached public menu views. A nil cache behind the
// interface is a no-op.
type Invalidator interface {
	Delete(ctx context.Context, keys ...string)
}
