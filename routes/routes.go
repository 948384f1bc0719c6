package routes

import (
	"github.com/ar363/restaurant-live-ordering/configs"
	"github.com/ar363/restaurant-live-ordering/controllers"
	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/middlewares"
	"github.com/ar363/restaurant-live-ordering/pkg/kv"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store kv.Store, hub *ws.Hub, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(store, menuRepo, hub, cfg.CartTTL)
	checkoutSvc := services.NewCheckoutService(db, store, orderRepo, tableRepo, hub, cfg.CheckoutTTL)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, tableRepo, hub)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuRepo)
	tableCtrl := controllers.NewTableController(tableRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	kitchenCtrl := controllers.NewKitchenController(orderSvc)
	ownerCtrl := controllers.NewOwnerController(analyticsSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	staffOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleKitchen, entity.RoleOwner)
	ownerOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleOwner)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	r.POST("/kitchen/login", authCtrl.KitchenLogin)
	r.POST("/owner/login", authCtrl.OwnerLogin)

	// Menu (อ่าน public แก้เฉพาะ staff)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)
	menu := r.Group("/menu", staffOnly)
	{
		menu.POST("", menuCtrl.Create)
		menu.PUT("/:id", menuCtrl.Update)
		menu.DELETE("/:id", menuCtrl.Delete)
	}

	// Tables (public)
	r.GET("/tables", tableCtrl.List)
	r.GET("/tables/:id", tableCtrl.Detail)

	// Cart sync (ต้องล็อกอิน)
	cart := r.Group("/cart", auth)
	{
		cart.POST("/sync", cartCtrl.Sync)
		cart.GET("/sync", cartCtrl.Get)
	}

	// Checkout
	checkout := r.Group("/checkout", auth)
	{
		checkout.POST("/start", checkoutCtrl.Start)
		checkout.POST("/update", checkoutCtrl.Update)
		checkout.GET("/status", checkoutCtrl.Status)
		checkout.POST("/cancel", checkoutCtrl.Cancel)
		checkout.POST("/complete", checkoutCtrl.Complete)
	}

	// Orders (user)
	u := r.Group("/", auth)
	{
		u.GET("/orders", orderCtrl.List)
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
	}

	// Kitchen console (staff)
	kitchen := r.Group("/kitchen", staffOnly)
	{
		kitchen.GET("/dashboard", kitchenCtrl.Dashboard)
		kitchen.GET("/orders", kitchenCtrl.Orders)
		kitchen.PUT("/orders/:id/status", kitchenCtrl.UpdateStatus)
	}

	// Owner (owner only)
	r.GET("/owner/analytics", ownerOnly, ownerCtrl.Analytics)

	// Realtime — token ไปทาง query ตรวจใน handler เพื่อปิดด้วย close code เฉพาะ
	r.GET("/ws/cart", hub.HandleCartWS(cfg.JWTSecret))
	r.GET("/ws/kitchen", hub.HandleKitchenWS(cfg.JWTSecret))
}
