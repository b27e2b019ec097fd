package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	vendorControllers "github.com/fiture99/Marche/controllers/vendor"
	"github.com/fiture99/Marche/middleware"
)

func SetupVendorRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	vendors := r.Group("/vendors")
	{
		vendors.GET("", vendorControllers.GetVendors(db))

		protected := vendors.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.Secret))
		{
			protected.GET("/my-vendor", vendorControllers.GetMyVendor(db))
			protected.PUT("/my-vendor", vendorControllers.UpdateMyVendor(db))
			protected.GET("/orders", vendorControllers.GetVendorOrders(db))
		}

		vendors.GET("/:vendorID", vendorControllers.GetVendor(db))
	}
}
