package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/httpresp"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	var (
		totalUsers        int64
		activeSubscribers int64
		totalRestaurants  int64
		totalMenus        int64
		totalDishes       int64
		totalTransactions int64
	)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{h.db.Model(&models.User{}), &totalUsers},
		{h.db.Model(&models.User{}).Where("subscription_status = ?", models.SubscriptionActive), &activeSubscribers},
		{h.db.Model(&models.Restaurant{}), &totalRestaurants},
		{h.db.Model(&models.Menu{}), &totalMenus},
		{h.db.Model(&models.Dish{}), &totalDishes},
		{h.db.Model(&models.PaymentTransaction{}), &totalTransactions},
	}

	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			httperr.Internal(c, "failed_to_load_stats", "Could not load stats.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":        totalUsers,
		"active_subscribers": activeSubscribers,
		"total_restaurants":  totalRestaurants,
		"total_menus":        totalMenus,
		"total_dishes":       totalDishes,
		"total_transactions": totalTransactions,
	})
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
