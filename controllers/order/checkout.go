package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/middleware"
	"github.com/fiture99/Marche/models"
)

type CreateOrderRequest struct {
	Items            []ItemRequest          `json:"items" binding:"required,min=1,dive"`
	PaymentMethod    string                 `json:"payment_method" binding:"required"`
	ShippingAddress  models.ShippingAddress `json:"shipping_address"`
	Notes            string                 `json:"notes"`
	PaymentReference string                 `json:"payment_reference"`
	TotalAmount      *decimal.Decimal       `json:"total_amount"`
	Status           string                 `json:"status"`
}

// CreateOrder runs the whole checkout as one transaction: validate the
// requested lines, assemble the order aggregate, persist it with a
// unique order number, decrement stock, and clear the matching cart
// rows. Any failure rolls the entire unit of work back.
func CreateOrder(db *gorm.DB, asm *Assembler, numberTries int, userID uint, req CreateOrderRequest) (*models.Order, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	var created models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		lines, subtotal, err := ValidateItems(tx, req.Items)
		if err != nil {
			return err
		}

		order, err := asm.Assemble(AssembleInput{
			UserID:           userID,
			Lines:            lines,
			Subtotal:         subtotal,
			PaymentMethod:    req.PaymentMethod,
			ShippingAddress:  req.ShippingAddress,
			Notes:            req.Notes,
			PaymentReference: req.PaymentReference,
			TotalOverride:    req.TotalAmount,
			StatusOverride:   req.Status,
		})
		if err != nil {
			return err
		}

		number, err := uniqueOrderNumber(tx, numberTries)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		// Atomic check-and-decrement. The validator's read and this
		// write could otherwise race a concurrent checkout into
		// overselling, so the decrement re-verifies stock in the same
		// statement. Zero rows affected means someone got there first.
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.Product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("%w: %v", ErrOrderCreationFailed, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, line.Product.Name)
			}
		}

		// Clear the whole cart line for every ordered product,
		// regardless of the quantity that was ordered.
		productIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			productIDs = append(productIDs, line.Product.ID)
		}
		if err := tx.Where("user_id = ? AND product_id IN ?", userID, productIDs).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		created = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items").Preload("Items.Product").First(&created, created.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// uniqueOrderNumber re-rolls the random order number until it does not
// collide with an existing order, up to the configured attempt count.
func uniqueOrderNumber(tx *gorm.DB, tries int) (string, error) {
	if tries < 1 {
		tries = 1
	}
	for i := 0; i < tries; i++ {
		number := models.GenerateOrderNumber()
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", ErrDuplicateOrderNumber
}

// POST /orders
func CreateOrderHandler(db *gorm.DB, asm *Assembler, numberTries int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			respondError(c, ErrUnauthorized)
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", ErrValidationFailed, err))
			return
		}

		order, err := CreateOrder(db, asm, numberTries, userID, req)
		if err != nil {
			respondError(c, err)
			return
		}

		BroadcastOrderEvent("order_created", order)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order":   order,
		})
	}
}
