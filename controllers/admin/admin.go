package adminControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderControllers "github.com/fiture99/Marche/controllers/order"
	"github.com/fiture99/Marche/models"
)

// GET /admin/dashboard
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, vendorCount, pendingVendors, productCount, orderCount, pendingOrders int64

		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.Vendor{}).Count(&vendorCount)
		db.Model(&models.Vendor{}).Where("status = ?", models.VendorStatusPending).Count(&pendingVendors)
		db.Model(&models.Product{}).Where("is_active = ?", true).Count(&productCount)
		db.Model(&models.Order{}).Count(&orderCount)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)

		c.JSON(http.StatusOK, gin.H{
			"users":           userCount,
			"vendors":         vendorCount,
			"pending_vendors": pendingVendors,
			"active_products": productCount,
			"orders":          orderCount,
			"pending_orders":  pendingOrders,
		})
	}
}

// GET /admin/vendors
func GetAllVendors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Vendor{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var vendors []models.Vendor
		if err := query.Order("created_at DESC").Find(&vendors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vendors": vendors})
	}
}

// PUT /admin/vendors/:vendorID/approve
func ApproveVendor(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return setVendorStatus(db, log, models.VendorStatusApproved, "Vendor approved")
}

// PUT /admin/vendors/:vendorID/reject
func RejectVendor(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return setVendorStatus(db, log, models.VendorStatusRejected, "Vendor rejected")
}

// PUT /admin/vendors/:vendorID/suspend
func SuspendVendor(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return setVendorStatus(db, log, models.VendorStatusSuspended, "Vendor suspended")
}

// setVendorStatus also flips the owning user's active flag: approved
// vendors can log in, rejected and suspended ones cannot.
func setVendorStatus(db *gorm.DB, log *zap.Logger, status models.VendorStatus, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vendor models.Vendor
		err := db.First(&vendor, c.Param("vendorID")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&vendor).Update("status", status).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).
				Where("id = ?", vendor.UserID).
				Update("is_active", status == models.VendorStatusApproved).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Vendor update failed", "message": err.Error()})
			return
		}

		log.Info("vendor status changed",
			zap.Uint("vendor_id", vendor.ID),
			zap.String("status", string(status)),
		)
		vendor.Status = status
		c.JSON(http.StatusOK, gin.H{"message": message, "vendor": vendor})
	}
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			parsed, ok := models.ParseOrderStatus(status)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var orders []models.Order
		if err := query.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// PUT /admin/orders/:orderID/status
//
// A transition to cancelled goes through the cancellation flow so stock
// is restored; other transitions are plain status updates. Terminal
// states never transition.
func UpdateOrderStatus(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		newStatus, ok := models.ParseOrderStatus(input.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		if newStatus == models.OrderStatusCancelled {
			order, err := orderControllers.CancelOrderAsAdmin(db, uint(orderID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			orderControllers.BroadcastOrderEvent("order_cancelled", order)
			c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
			return
		}

		var order models.Order
		if err := db.First(&order, orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is in a terminal state"})
			return
		}

		prevStatus := order.Status
		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		log.Info("order status changed",
			zap.Uint("order_id", order.ID),
			zap.String("from", string(prevStatus)),
			zap.String("to", string(newStatus)),
		)
		orderControllers.BroadcastOrderEvent("order_status_changed", &order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}

// GET /admin/products
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Preload("Vendor").
			Preload("Category").
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// PUT /admin/products/:productID/toggle-active
func ToggleProductActive(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("productID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		product.IsActive = !product.IsActive
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}
