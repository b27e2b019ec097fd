package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	productControllers "github.com/fiture99/Marche/controllers/product"
	"github.com/fiture99/Marche/middleware"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))

		protected := products.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.Secret))
		{
			// Registered before the :productID wildcard
			protected.GET("/my-products", productControllers.GetMyProducts(db))
			protected.POST("", productControllers.CreateProduct(db))
			protected.POST("/upload", productControllers.UploadProductImage(db, cfg.Uploads.Dir))
			protected.PUT("/:productID", productControllers.UpdateProduct(db))
			protected.DELETE("/:productID", productControllers.DeleteProduct(db))
		}

		products.GET("/:productID", productControllers.GetProduct(db))
	}
}
