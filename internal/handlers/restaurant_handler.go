package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/authz"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/httpresp"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
	ucCatalog "github.com/spaceqrpro/qrmenu-api/internal/usecase/catalog"
)

type RestaurantHandler struct {
	db         *gorm.DB
	guard      *authz.Guard
	audit      *audit.Dispatcher
	deleteUC   *ucCatalog.DeleteRestaurant
	invalidate *ucCatalog.InvalidateRestaurantMenus
}

func NewRestaurantHandler(
	db *gorm.DB,
	guard *authz.Guard,
	audit *audit.Dispatcher,
	deleteUC *ucCatalog.DeleteRestaurant,
	invalidate *ucCatalog.InvalidateRestaurantMenus,
) *RestaurantHandler {
	return &RestaurantHandler{
		db:         db,
		guard:      guard,
		audit:      audit,
		deleteUC:   deleteUC,
		invalidate: invalidate,
	}
}

// --------- Requests ---------

type CreateRestaurantRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Logo    *string `json:"logo"`
}

type UpdateRestaurantRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Logo    *string `json:"logo,omitempty"`
}

// --------- Handlers ---------

func (h *RestaurantHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	restaurant := models.Restaurant{
		UserID:  user.ID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Logo:    req.Logo,
	}

	if err := h.db.Create(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_create_restaurant", "Could not create restaurant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "restaurant_created",
		Entity:   "restaurant",
		EntityID: &restaurant.ID,
	})

	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurants []models.Restaurant
	if err := h.db.
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&restaurants).Error; err != nil {

		httperr.Internal(c, "failed_to_list_restaurants", "Could not list restaurants.")
		return
	}

	httpresp.List(c, restaurants)
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	restaurant, err := h.guard.Restaurant(c.Request.Context(), user, c.Param("restaurant_id"))
	if err != nil {
		writeGuardError(c, err, "restaurant_not_found", "Restaurant not found.")
		return
	}

	httpresp.OK(c, restaurant)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	restaurant, err := h.guard.Restaurant(c.Request.Context(), user, c.Param("restaurant_id"))
	if err != nil {
		writeGuardError(c, err, "restaurant_not_found", "Restaurant not found.")
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Logo != nil {
		restaurant.Logo = req.Logo
	}

	if err := h.db.Save(restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_restaurant", "Could not update restaurant.")
		return
	}

	// Public menu views embed restaurant fields, so they must be flushed.
	// The update itself already landed, a failed flush only means staleness
	// until the TTL expires.
	if err := h.invalidate.Execute(c.Request.Context(), restaurant.ID); err != nil {
		log.Println("cache invalidation error:", err)
	}

	httpresp.OK(c, restaurant)
}

// Delete cascades menus and dishes. The deletes are sequential per-table
// writes, not one transaction; a crash mid-cascade can orphan children,
// which stay unreachable behind the ownership guards.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	restaurant, err := h.guard.Restaurant(c.Request.Context(), user, c.Param("restaurant_id"))
	if err != nil {
		writeGuardError(c, err, "restaurant_not_found", "Restaurant not found.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), restaurant.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_restaurant", "Could not delete restaurant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "restaurant_deleted",
		Entity:   "restaurant",
		EntityID: &restaurant.ID,
	})

	httpresp.OK(c, gin.H{"message": "Restaurant deleted successfully"})
}

// writeGuardError maps guard failures, keeping missing and foreign
// resources indistinguishable.
func writeGuardError(c *gin.Context, err error, code, message string) {
	if errors.Is(err, authz.ErrNotFound) {
		httperr.NotFound(c, code, message)
		return
	}
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
