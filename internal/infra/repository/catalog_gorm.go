package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

// CatalogGormRepository backs the ownership guards. Missing rows come back
// as (nil, nil) so callers can collapse them with foreign ownership.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) FindRestaurantByIDAndOwner(
	ctx context.Context,
	id string,
	userID string,
) (*models.Restaurant, error) {

	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&restaurant).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *CatalogGormRepository) FindMenuByID(
	ctx context.Context,
	id string,
) (*models.Menu, error) {

	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&menu).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

func (r *CatalogGormRepository) FindDishByID(
	ctx context.Context,
	id string,
) (*models.Dish, error) {

	var dish models.Dish
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dish).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

func (r *CatalogGormRepository) FindMenusByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]models.Menu, error) {

	var menus []models.Menu
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *CatalogGormRepository) DeleteDishesByMenu(
	ctx context.Context,
	menuID string,
) error {
	return r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Delete(&models.Dish{}).Error
}

func (r *CatalogGormRepository) DeleteMenu(
	ctx context.Context,
	menuID string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", menuID).
		Delete(&models.Menu{}).Error
}

func (r *CatalogGormRepository) DeleteMenusByRestaurant(
	ctx context.Context,
	restaurantID string,
) error {
	return r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Delete(&models.Menu{}).Error
}

func (r *CatalogGormRepository) DeleteRestaurant(
	ctx context.Context,
	restaurantID string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", restaurantID).
		Delete(&models.Restaurant{}).Error
}
