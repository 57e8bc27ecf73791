package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/authz"
	"github.com/spaceqrpro/qrmenu-api/internal/cache"
	"github.com/spaceqrpro/qrmenu-api/internal/config"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/handlers"
	"github.com/spaceqrpro/qrmenu-api/internal/infra/payment"
	infraRepo "github.com/spaceqrpro/qrmenu-api/internal/infra/repository"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	"github.com/spaceqrpro/qrmenu-api/internal/token"
	ucCatalog "github.com/spaceqrpro/qrmenu-api/internal/usecase/catalog"
	ucSubscription "github.com/spaceqrpro/qrmenu-api/internal/usecase/subscription"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	maker := token.NewMaker(cfg.JWTSecret)

	userRepo := infraRepo.NewUserGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	guard := authz.NewGuard(catalogRepo)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	publicCache := cache.New(cfg.RedisAddr, cfg.RedisPassword)

	// A typed nil must not end up inside the interface, the usecases
	// check provider == nil to report unavailability.
	var provider billing.Provider
	if p := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret); p != nil {
		provider = p
	}

	// ======================================================
	// USE CASES — CATALOG
	// ======================================================
	deleteRestaurantUC := ucCatalog.NewDeleteRestaurant(catalogRepo, publicCache)
	deleteMenuUC := ucCatalog.NewDeleteMenu(catalogRepo, publicCache)
	invalidateMenusUC := ucCatalog.NewInvalidateRestaurantMenus(catalogRepo, publicCache)

	// ======================================================
	// USE CASES — SUBSCRIPTION
	// ======================================================
	reconciler := ucSubscription.NewReconciler(billingRepo, auditDispatcher)

	createCheckoutUC := ucSubscription.NewCreateCheckout(
		billingRepo,
		provider,
	)

	pollStatusUC := ucSubscription.NewPollStatus(
		provider,
		reconciler,
	)

	handleWebhookUC := ucSubscription.NewHandleWebhook(
		provider,
		reconciler,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, maker, cfg)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		createCheckoutUC,
		pollStatusUC,
		handleWebhookUC,
	)

	restaurantHandler := handlers.NewRestaurantHandler(db, guard, auditDispatcher, deleteRestaurantUC, invalidateMenusUC)
	menuHandler := handlers.NewMenuHandler(db, guard, auditDispatcher, publicCache, cfg, deleteMenuUC)
	dishHandler := handlers.NewDishHandler(db, guard, auditDispatcher, publicCache)

	publicHandler := handlers.NewPublicHandler(db, publicCache)
	adminHandler := handlers.NewAdminHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "QR Menu API"})
		})
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/public/menu/:menu_id", publicHandler.GetMenu)

		// The signature header is the authentication here.
		api.POST("/webhook/stripe", subscriptionHandler.Webhook)

		// ------------------------------
		// ACTIVE ACCOUNT
		// ------------------------------
		active := api.Group("/")
		active.Use(middleware.Auth(maker, userRepo), middleware.RequireActive())
		{
			active.GET("/auth/me", authHandler.Me)

			active.POST("/subscription/create-checkout", subscriptionHandler.CreateCheckout)
			active.GET("/subscription/status/:session_id", subscriptionHandler.Status)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := active.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/audit-logs", adminHandler.AuditLogs)
			}

			// ------------------------------
			// SUBSCRIBED ONLY
			// ------------------------------
			subscribed := active.Group("/")
			subscribed.Use(middleware.RequireSubscribed())
			{
				subscribed.POST("/restaurants", restaurantHandler.Create)
				subscribed.GET("/restaurants", restaurantHandler.List)
				subscribed.GET("/restaurants/:restaurant_id", restaurantHandler.Get)
				subscribed.PUT("/restaurants/:restaurant_id", restaurantHandler.Update)
				subscribed.DELETE("/restaurants/:restaurant_id", restaurantHandler.Delete)

				subscribed.POST("/menus", menuHandler.Create)
				subscribed.GET("/menus", menuHandler.List)
				subscribed.GET("/menus/:menu_id", menuHandler.Get)
				subscribed.PUT("/menus/:menu_id", menuHandler.Update)
				subscribed.DELETE("/menus/:menu_id", menuHandler.Delete)

				subscribed.POST("/dishes", dishHandler.Create)
				subscribed.GET("/dishes", dishHandler.List)
				subscribed.PUT("/dishes/:dish_id", dishHandler.Update)
				subscribed.DELETE("/dishes/:dish_id", dishHandler.Delete)
			}
		}
	}
}
