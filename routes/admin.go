package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	adminControllers "github.com/fiture99/Marche/controllers/admin"
	productControllers "github.com/fiture99/Marche/controllers/product"
	"github.com/fiture99/Marche/middleware"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(cfg.JWT.Secret), middleware.RequireAdmin(db))
	{
		admin.GET("/dashboard", adminControllers.GetDashboardStats(db))

		admin.GET("/vendors", adminControllers.GetAllVendors(db))
		admin.PUT("/vendors/:vendorID/approve", adminControllers.ApproveVendor(db, log))
		admin.PUT("/vendors/:vendorID/reject", adminControllers.RejectVendor(db, log))
		admin.PUT("/vendors/:vendorID/suspend", adminControllers.SuspendVendor(db, log))

		admin.GET("/orders", adminControllers.GetAllOrders(db))
		admin.PUT("/orders/:orderID/status", adminControllers.UpdateOrderStatus(db, log))

		admin.GET("/products", adminControllers.GetAllProducts(db))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(db))
		admin.PUT("/products/:productID/toggle-active", adminControllers.ToggleProductActive(db))

		admin.GET("/users", adminControllers.GetAllUsers(db))
	}
}
