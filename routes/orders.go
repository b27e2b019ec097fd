package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	orderControllers "github.com/fiture99/Marche/controllers/order"
	"github.com/fiture99/Marche/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	asm := orderControllers.NewAssembler(cfg.Checkout, log)

	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		protected := orders.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.Secret))
		{
			protected.POST("", orderControllers.CreateOrderHandler(db, asm, cfg.Checkout.OrderNumberTries))
			protected.GET("", orderControllers.GetMyOrdersHandler(db))
			protected.GET("/:orderID", orderControllers.GetOrderHandler(db))
			protected.PUT("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
		}
	}
}
