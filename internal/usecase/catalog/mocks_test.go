package catalog

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type mockStore struct {
	restaurants map[string]models.Restaurant
	menus       map[string]models.Menu
	dishes      map[string]models.Dish

	findMenusErr        error
	deleteDishesErr     error
	deleteMenuErr       error
	deleteMenusErr      error
	deleteRestaurantErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		restaurants: map[string]models.Restaurant{},
		menus:       map[string]models.Menu{},
		dishes:      map[string]models.Dish{},
	}
}

func (m *mockStore) seedRestaurant(id string, menuDishes map[string]int) {
	m.restaurants[id] = models.Restaurant{ID: id, UserID: "owner"}
	for menuID, dishCount := range menuDishes {
		m.menus[menuID] = models.Menu{ID: menuID, RestaurantID: id}
		for i := 0; i < dishCount; i++ {
			dishID := menuID + "-dish-" + string(rune('a'+i))
			m.dishes[dishID] = models.Dish{ID: dishID, MenuID: menuID}
		}
	}
}

func (m *mockStore) menusOf(restaurantID string) []models.Menu {
	var out []models.Menu
	for _, menu := range m.menus {
		if menu.RestaurantID == restaurantID {
			out = append(out, menu)
		}
	}
	return out
}

func (m *mockStore) dishesOf(menuID string) []models.Dish {
	var out []models.Dish
	for _, dish := range m.dishes {
		if dish.MenuID == menuID {
			out = append(out, dish)
		}
	}
	return out
}

func (m *mockStore) FindMenusByRestaurant(_ context.Context, restaurantID string) ([]models.Menu, error) {
	if m.findMenusErr != nil {
		return nil, m.findMenusErr
	}
	return m.menusOf(restaurantID), nil
}

func (m *mockStore) DeleteDishesByMenu(_ context.Context, menuID string) error {
	if m.deleteDishesErr != nil {
		return m.deleteDishesErr
	}
	for id, dish := range m.dishes {
		if dish.MenuID == menuID {
			delete(m.dishes, id)
		}
	}
	return nil
}

func (m *mockStore) DeleteMenu(_ context.Context, menuID string) error {
	if m.deleteMenuErr != nil {
		return m.deleteMenuErr
	}
	delete(m.menus, menuID)
	return nil
}

func (m *mockStore) DeleteMenusByRestaurant(_ context.Context, restaurantID string) error {
	if m.deleteMenusErr != nil {
		return m.deleteMenusErr
	}
	for id, menu := range m.menus {
		if menu.RestaurantID == restaurantID {
			delete(m.menus, id)
		}
	}
	return nil
}

func (m *mockStore) DeleteRestaurant(_ context.Context, restaurantID string) error {
	if m.deleteRestaurantErr != nil {
		return m.deleteRestaurantErr
	}
	delete(m.restaurants, restaurantID)
	return nil
}

type mockInvalidator struct {
	deleted []string
}

func (m *mockInvalidator) Delete(_ context.Context, keys ...string) {
	m.deleted = append(m.deleted, keys...)
}
