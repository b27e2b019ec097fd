package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
)

// SetupRoutes wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	SetupAuthRoutes(r, db, cfg)
	SetupProductRoutes(r, db, cfg)
	SetupCategoryRoutes(r, db, cfg)
	SetupVendorRoutes(r, db, cfg)
	SetupCartRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg, log)
	SetupAdminRoutes(r, db, cfg, log)
}
