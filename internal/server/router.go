package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/middleware"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	RatingHandler  *handlers.RatingHandler
	OrderHandler   *handlers.OrderHandler
	ExpenseHandler *handlers.ExpenseHandler
	UploadHandler  *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("storefront-backend"))
	if cfg.Log != nil {
		router.Use(middleware.RequestLog(cfg.Log))
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)
	router.GET("/categories", cfg.CatalogHandler.ListCategories)
	router.GET("/products", cfg.CatalogHandler.ListProducts)
	router.GET("/products/:id", cfg.CatalogHandler.GetProduct)
	router.GET("/products/:id/ratings", cfg.RatingHandler.GetProductRatings)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PUT("/user/name", cfg.UserHandler.UpdateName)
	protected.PUT("/user/avatar", cfg.UserHandler.UpdateAvatar)
	// Addresses
	protected.GET("/user/addresses", cfg.UserHandler.ListAddresses)
	protected.POST("/user/addresses", cfg.UserHandler.CreateAddress)
	protected.PUT("/user/addresses/:id", cfg.UserHandler.UpdateAddress)
	protected.DELETE("/user/addresses/:id", cfg.UserHandler.DeleteAddress)
	protected.POST("/user/addresses/:id/default", cfg.UserHandler.SetDefaultAddress)
	// Cart
	protected.GET("/cart", cfg.CartHandler.GetCart)
	protected.POST("/cart/items", cfg.CartHandler.AddItem)
	protected.POST("/cart/buy-now", cfg.CartHandler.BuyNow)
	protected.PUT("/cart/items/:productId", cfg.CartHandler.UpdateQuantity)
	protected.DELETE("/cart/items/:productId", cfg.CartHandler.RemoveItem)
	protected.DELETE("/cart", cfg.CartHandler.Clear)
	// Ratings
	protected.POST("/products/:id/ratings", cfg.RatingHandler.SubmitRating)
	protected.DELETE("/ratings/:id", cfg.RatingHandler.DeleteRating)
	// Orders
	protected.POST("/checkout", cfg.OrderHandler.Checkout)
	protected.GET("/orders", cfg.OrderHandler.ListMyOrders)
	protected.GET("/orders/:id", cfg.OrderHandler.GetOrder)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	// Catalog
	admin.POST("/categories", cfg.CatalogHandler.CreateCategory)
	admin.PUT("/categories/:id", cfg.CatalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", cfg.CatalogHandler.DeleteCategory)
	admin.POST("/products", cfg.CatalogHandler.CreateProduct)
	admin.PUT("/products/:id", cfg.CatalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", cfg.CatalogHandler.DeleteProduct)
	// Orders
	admin.GET("/orders", cfg.OrderHandler.ListOrders)
	admin.PUT("/orders/:id/status", cfg.OrderHandler.UpdateStatus)
	// Expenses
	admin.GET("/expenses", cfg.ExpenseHandler.ListExpenses)
	admin.POST("/expenses", cfg.ExpenseHandler.CreateExpense)
	admin.PUT("/expenses/:id", cfg.ExpenseHandler.UpdateExpense)
	admin.DELETE("/expenses/:id", cfg.ExpenseHandler.DeleteExpense)
	admin.GET("/expenses/summary", cfg.ExpenseHandler.Summary)
	admin.GET("/expense-categories", cfg.ExpenseHandler.ListCategories)
	admin.POST("/expense-categories", cfg.ExpenseHandler.CreateCategory)
	admin.PUT("/expense-categories/:id", cfg.ExpenseHandler.UpdateCategory)
	admin.DELETE("/expense-categories/:id", cfg.ExpenseHandler.DeleteCategory)
	// Uploads
	admin.POST("/uploads/images", cfg.UploadHandler.UploadImage)

	// ================
	// || Superadmin ||
	// ================
	super := router.Group("/admin")
	super.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireSuperAdmin())
	super.PUT("/users/:id/role", cfg.UserHandler.SetRole)

	return router
}
