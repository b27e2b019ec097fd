package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	authControllers "github.com/fiture99/Marche/controllers/auth"
	"github.com/fiture99/Marche/middleware"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authControllers.Register(db, cfg.JWT))
		auth.POST("/login", authControllers.Login(db, cfg.JWT))
		auth.POST("/refresh", authControllers.Refresh(db, cfg.JWT))

		protected := auth.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWT.Secret))
		{
			protected.GET("/me", authControllers.Me(db))
			protected.PUT("/profile", authControllers.UpdateProfile(db))
			protected.PUT("/change-password", authControllers.ChangePassword(db))
		}
	}
}
