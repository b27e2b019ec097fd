package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/middleware"
	"github.com/fiture99/Marche/models"
)

// CancelOrder cancels one of the user's orders and restores stock to
// every affected product, all in one transaction. Only pending and
// processing orders can be cancelled.
func CancelOrder(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	if err := cancelAndRestore(db, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrderAsAdmin is the administrative entry point. Same transition
// rules, no ownership check.
func CancelOrderAsAdmin(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	if err := cancelAndRestore(db, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func cancelAndRestore(db *gorm.DB, order *models.Order) error {
	if !order.CanCancel() {
		return fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional update so a concurrent cancel or delivery cannot
		// double-restore: only one writer flips the status.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID,
				[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusProcessing}).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order is no longer cancellable", ErrInvalidTransition)
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.Status = models.OrderStatusCancelled
	return nil
}

// PUT /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			respondError(c, ErrUnauthorized)
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			respondError(c, fmt.Errorf("%w: invalid order id", ErrValidationFailed))
			return
		}

		order, err := CancelOrder(db, userID, uint(orderID))
		if err != nil {
			respondError(c, err)
			return
		}

		BroadcastOrderEvent("order_cancelled", order)
		c.JSON(http.StatusOK, gin.H{
			"message": "Order cancelled successfully",
			"order":   order,
		})
	}
}
