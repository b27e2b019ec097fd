package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	categoryControllers "github.com/fiture99/Marche/controllers/category"
	"github.com/fiture99/Marche/middleware"
)

func SetupCategoryRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	categories := r.Group("/categories")
	{
		categories.GET("", categoryControllers.GetCategories(db))
		categories.GET("/:categoryID", categoryControllers.GetCategory(db))

		admin := categories.Group("")
		admin.Use(middleware.RequireAuth(cfg.JWT.Secret), middleware.RequireAdmin(db))
		{
			admin.POST("", categoryControllers.CreateCategory(db))
			admin.PUT("/:categoryID", categoryControllers.UpdateCategory(db))
			admin.DELETE("/:categoryID", categoryControllers.DeleteCategory(db))
		}
	}
}
