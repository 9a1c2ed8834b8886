package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/config"
	"github.com/serg-shkviro/eshop/internal/app/controller"
	"github.com/serg-shkviro/eshop/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	userController     *controller.UserController
	categoryController *controller.CategoryController
	productController  *controller.ProductController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	reviewController   *controller.ReviewController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	reviewController *controller.ReviewController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		userController:     userController,
		categoryController: categoryController,
		productController:  productController,
		cartController:     cartController,
		orderController:    orderController,
		reviewController:   reviewController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "E-Shop API is running",
		})
	})

	router.GET("/api", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "E-Shop API",
			"version": "v1",
			"docs":    "/api/v1",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Self-service profile routes; /users/me wins over /users/:id.
		v1.GET("/users/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		v1.PUT("/users/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		v1.POST("/users/me/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			users.GET("", r.userController.ListUsers)
			users.GET("/:id", r.userController.GetUser)
			users.PUT("/:id", r.userController.UpdateUser)
			users.DELETE("/:id", r.userController.DeleteUser)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategory)

			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.DeleteCategory,
			)
		}

		products := v1.Group("/products")
		{
			// Optional auth: admins can request inactive products.
			products.GET("", r.authMiddleware.OptionalAuthenticate(), r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.ListOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("", r.orderController.PlaceOrder)
			orders.PUT("/:id", r.orderController.UpdateOrderStatus)
		}

		v1.GET("/reviews/product/:id", r.reviewController.ListProductReviews)

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.POST("", r.reviewController.CreateReview)
			reviews.GET("/my", r.reviewController.ListMyReviews)
			reviews.PUT("/:id", r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}
	}

	r.setupStaticFiles(router)

	return router
}

// setupStaticFiles serves the built frontend, falling back to index.html
// for client-side routes. API and health paths are never swallowed.
func (r *Router) setupStaticFiles(router *gin.Engine) {
	dist := r.config.Static.FrontendDir
	if dist == "" {
		return
	}

	router.Static("/assets", filepath.Join(dist, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dist, "favicon.ico"))

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/health") {
			c.JSON(http.StatusNotFound, gin.H{"error": "RESOURCE_NOT_FOUND", "message": "Route not found"})
			return
		}
		c.File(filepath.Join(dist, "index.html"))
	})
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
