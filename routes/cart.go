package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	cartControllers "github.com/fiture99/Marche/controllers/cart"
	"github.com/fiture99/Marche/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth(cfg.JWT.Secret))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
		cart.PUT("/:itemID", cartControllers.UpdateCartItem(db))
		cart.DELETE("/:itemID", cartControllers.RemoveFromCart(db))
	}
}
