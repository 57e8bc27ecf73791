package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

// PublicHandler serves the unauthenticated menu view reached from a
// scanned QR code.
type PublicHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPublicHandler(db *gorm.DB, cache *cache.Cache) *PublicHandler {
	return &PublicHandler{db: db, cache: cache}
}

type PublicMenuResponse struct {
	Menu       models.Menu       `json:"menu"`
	Restaurant models.Restaurant `json:"restaurant"`
	Dishes     []models.Dish     `json:"dishes"`
}

func (h *PublicHandler) GetMenu(c *gin.Context) {
	menuID := c.Param("menu_id")

	var resp PublicMenuResponse
	if h.cache.GetJSON(c.Request.Context(), cache.PublicMenuKey(menuID), &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	var menu models.Menu
	if err := h.db.
		Where("id = ? AND is_active = ?", menuID, true).
		First(&menu).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "menu_not_found", "Menu not found.")
			return
		}
		httperr.Internal(c, "failed_to_load_menu", "Could not load menu.")
		return
	}

	var restaurant models.Restaurant
	if err := h.db.
		Where("id = ?", menu.RestaurantID).
		First(&restaurant).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return
		}
		httperr.Internal(c, "failed_to_load_menu", "Could not load menu.")
		return
	}

	dishes := []models.Dish{}
	if err := h.db.
		Where("menu_id = ? AND is_available = ?", menu.ID, true).
		Order("created_at ASC").
		Find(&dishes).Error; err != nil {

		httperr.Internal(c, "failed_to_load_menu", "Could not load menu.")
		return
	}

	resp = PublicMenuResponse{
		Menu:       menu,
		Restaurant: restaurant,
		Dishes:     dishes,
	}

	h.cache.SetJSON(c.Request.Context(), cache.PublicMenuKey(menuID), resp)

	c.JSON(http.StatusOK, resp)
}
