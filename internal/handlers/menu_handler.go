package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/authz"
	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/config"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/httpresp"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
	"github.com/spaceqrpro/qrmenu-api/internal/qr"
	ucCatalog "github.com/spaceqrpro/qrmenu-api/internal/usecase/catalog"
)

type MenuHandler struct {
	db       *gorm.DB
	guard    *authz.Guard
	audit    *audit.Dispatcher
	cache    *cache.Cache
	config   *config.Config
	deleteUC *ucCatalog.DeleteMenu
}

func NewMenuHandler(
	db *gorm.DB,
	guard *authz.Guard,
	audit *audit.Dispatcher,
	cache *cache.Cache,
	cfg *config.Config,
	deleteUC *ucCatalog.DeleteMenu,
) *MenuHandler {
	return &MenuHandler{
		db:       db,
		guard:    guard,
		audit:    audit,
		cache:    cache,
		config:   cfg,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type CreateMenuRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

type UpdateMenuRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *MenuHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	restaurant, err := h.guard.Restaurant(c.Request.Context(), user, req.RestaurantID)
	if err != nil {
		writeGuardError(c, err, "restaurant_not_found", "Restaurant not found.")
		return
	}

	menu := models.Menu{
		// The id is assigned up front because the QR payload embeds it.
		ID:           uuid.NewString(),
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		IsActive:     true,
	}

	qrCode, err := qr.EncodeDataURL(qr.MenuURL(h.config.PublicMenuBaseURL, menu.ID))
	if err != nil {
		httperr.Internal(c, "failed_to_generate_qr", "Could not generate QR code.")
		return
	}
	menu.QRCode = qrCode

	if err := h.db.Create(&menu).Error; err != nil {
		httperr.Internal(c, "failed_to_create_menu", "Could not create menu.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "menu_created",
		Entity:   "menu",
		EntityID: &menu.ID,
	})

	c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ownedRestaurants := h.db.
		Model(&models.Restaurant{}).
		Select("id").
		Where("user_id = ?", user.ID)

	var menus []models.Menu
	if err := h.db.
		Where("restaurant_id IN (?)", ownedRestaurants).
		Order("created_at ASC").
		Find(&menus).Error; err != nil {

		httperr.Internal(c, "failed_to_list_menus", "Could not list menus.")
		return
	}

	httpresp.List(c, menus)
}

func (h *MenuHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	menu, _, err := h.guard.Menu(c.Request.Context(), user, c.Param("menu_id"))
	if err != nil {
		writeGuardError(c, err, "menu_not_found", "Menu not found.")
		return
	}

	httpresp.OK(c, menu)
}

func (h *MenuHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	menu, _, err := h.guard.Menu(c.Request.Context(), user, c.Param("menu_id"))
	if err != nil {
		writeGuardError(c, err, "menu_not_found", "Menu not found.")
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	// The QR code is not re-rendered on rename, the public URL only
	// embeds the menu id.
	if err := h.db.Save(menu).Error; err != nil {
		httperr.Internal(c, "failed_to_update_menu", "Could not update menu.")
		return
	}

	h.cache.Delete(c.Request.Context(), cache.PublicMenuKey(menu.ID))

	httpresp.OK(c, menu)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	menu, _, err := h.guard.Menu(c.Request.Context(), user, c.Param("menu_id"))
	if err != nil {
		writeGuardError(c, err, "menu_not_found", "Menu not found.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), menu.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_menu", "Could not delete menu.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "menu_deleted",
		Entity:   "menu",
		EntityID: &menu.ID,
	})

	httpresp.OK(c, gin.H{"message": "Menu deleted successfully"})
}
