// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/config"
	"github.com/bookhaven/bookmarket-backend/internal/handlers"
	"github.com/bookhaven/bookmarket-backend/internal/middleware"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
	"github.com/bookhaven/bookmarket-backend/internal/services"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Repositories
	bookRepo := repositories.NewBookRepository(db)
	libraryBookRepo := repositories.NewLibraryBookRepository(db)
	bookstoreRepo := repositories.NewBookstoreRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)

	// Services
	storageService, _ := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(cfg)

	authService := services.NewAuthService(db, cfg)
	bookstoreService := services.NewBookstoreService(db, bookstoreRepo)
	catalogService := services.NewCatalogService(db, bookstoreRepo, bookRepo, libraryBookRepo)
	availabilityService := services.NewAvailabilityService(db, bookstoreRepo, bookRepo, libraryBookRepo)
	reviewService := services.NewReviewService(db, bookstoreRepo, reviewRepo, purchaseRepo)
	cartService := services.NewCartService(db, catalogService)
	orderService := services.NewOrderService(db, bookRepo, libraryBookRepo, paymentService)
	wishlistService := services.NewWishlistService(db, catalogService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookstoreHandler := handlers.NewBookstoreHandler(bookstoreService, reviewService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, availabilityService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Catalog routes
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", middleware.OptionalAuth(), catalogHandler.ListCatalog)
			catalog.GET("/:ref", middleware.OptionalAuth(), catalogHandler.GetItem)

			protected := catalog.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/:ref/availability", catalogHandler.SetAvailability)
				protected.DELETE("/:ref", catalogHandler.DeleteItem)
				protected.POST("/covers", middleware.UploadRateLimit(), catalogHandler.UploadCover)
			}
		}

		// Listing creation
		v1.POST("/books", middleware.AuthRequired(), catalogHandler.CreateBook)
		v1.POST("/library-books", middleware.AuthRequired(), catalogHandler.CreateLibraryBook)

		// Marketplace-owned listings (no storefront attached)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/books", catalogHandler.CreateMarketplaceBook)
		}

		// Bookstore routes
		bookstores := v1.Group("/bookstores")
		{
			bookstores.GET("/mine", middleware.AuthRequired(), bookstoreHandler.GetMyBookstore)
			bookstores.PUT("/mine", middleware.AuthRequired(), bookstoreHandler.UpdateMyBookstore)
			bookstores.POST("", middleware.AuthRequired(), bookstoreHandler.CreateBookstore)

			bookstores.GET("/:id", bookstoreHandler.GetBookstore)
			bookstores.GET("/:id/stats", bookstoreHandler.GetStats)
			bookstores.GET("/:id/reviews", bookstoreHandler.ListReviews)
			bookstores.PUT("/:id/review", middleware.AuthRequired(), bookstoreHandler.SubmitReview)
			bookstores.DELETE("/:id/review", middleware.AuthRequired(), bookstoreHandler.DeleteReview)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:ref", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:ref", cartHandler.RemoveItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/confirm", orderHandler.ConfirmPayment)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}

		// Wishlist routes
		wishlist := v1.Group("/wishlist")
		wishlist.Use(middleware.AuthRequired())
		{
			wishlist.GET("", wishlistHandler.ListItems)
			wishlist.POST("/items", wishlistHandler.AddItem)
			wishlist.DELETE("/items/:ref", wishlistHandler.RemoveItem)
		}
	}

	return r
}
