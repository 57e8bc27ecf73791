package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/authz"
	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/httpresp"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type DishHandler struct {
	db    *gorm.DB
	guard *authz.Guard
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewDishHandler(db *gorm.DB, guard *authz.Guard, audit *audit.Dispatcher, cache *cache.Cache) *DishHandler {
	return &DishHandler{db: db, guard: guard, audit: audit, cache: cache}
}

// --------- Requests ---------

type CreateDishRequest struct {
	MenuID      string   `json:"menu_id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Image       *string  `json:"image"`
	Options     []string `json:"options"`
}

type UpdateDishRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Options     *[]string `json:"options,omitempty"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// --------- Handlers ---------

func (h *DishHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	menu, _, err := h.guard.Menu(c.Request.Context(), user, req.MenuID)
	if err != nil {
		writeGuardError(c, err, "menu_not_found", "Menu not found.")
		return
	}

	dish := models.Dish{
		MenuID:      menu.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Options:     req.Options,
		IsAvailable: true,
	}

	if err := h.db.Create(&dish).Error; err != nil {
		httperr.Internal(c, "failed_to_create_dish", "Could not create dish.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.PublicMenuKey(menu.ID))

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "dish_created",
		Entity:   "dish",
		EntityID: &dish.ID,
	})

	c.JSON(http.StatusCreated, dish)
}

func (h *DishHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	menuID := c.Query("menu_id")
	if menuID == "" {
		httperr.BadRequest(c, "missing_menu_id", "Query parameter menu_id is required.")
		return
	}

	menu, _, err := h.guard.Menu(c.Request.Context(), user, menuID)
	if err != nil {
		writeGuardError(c, err, "menu_not_found", "Menu not found.")
		return
	}

	var dishes []models.Dish
	if err := h.db.
		Where("menu_id = ?", menu.ID).
		Order("created_at ASC").
		Find(&dishes).Error; err != nil {

		httperr.Internal(c, "failed_to_list_dishes", "Could not list dishes.")
		return
	}

	httpresp.List(c, dishes)
}

func (h *DishHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	dish, _, _, err := h.guard.Dish(c.Request.Context(), user, c.Param("dish_id"))
	if err != nil {
		writeGuardError(c, err, "dish_not_found", "Dish not found.")
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.Image != nil {
		dish.Image = req.Image
	}
	if req.Options != nil {
		dish.Options = *req.Options
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(dish).Error; err != nil {
		httperr.Internal(c, "failed_to_update_dish", "Could not update dish.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.PublicMenuKey(dish.MenuID))

	httpresp.OK(c, dish)
}

func (h *DishHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	dish, _, _, err := h.guard.Dish(c.Request.Context(), user, c.Param("dish_id"))
	if err != nil {
		writeGuardError(c, err, "dish_not_found", "Dish not found.")
		return
	}

	if err := h.db.Delete(dish).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_dish", "Could not delete dish.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.PublicMenuKey(dish.MenuID))

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "dish_deleted",
		Entity:   "dish",
		EntityID: &dish.ID,
	})

	httpresp.OK(c, gin.H{"message": "Dish deleted successfully"})
}
