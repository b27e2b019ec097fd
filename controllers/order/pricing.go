package orderControllers

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/models"
)

type ItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// Line is one validated order line with its price snapshot.
type Line struct {
	Product    models.Product
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// ValidateItems resolves each requested (product, quantity) pair against
// the catalog and computes line totals. It is read-only and
// all-or-nothing: the first failing line fails the whole request.
//
// The stock check here is advisory; the authoritative check is the
// conditional decrement performed inside the checkout transaction.
func ValidateItems(db *gorm.DB, items []ItemRequest) ([]Line, decimal.Decimal, error) {
	lines := make([]Line, 0, len(items))
	subtotal := decimal.Zero

	for _, item := range items {
		var product models.Product
		err := db.Where("id = ? AND is_active = ?", item.ProductID, true).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, fmt.Errorf("%w: product %d not found or inactive", ErrNotFound, item.ProductID)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		if product.Stock < item.Quantity {
			return nil, decimal.Zero, fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
		}

		unitPrice := product.Price
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(totalPrice)

		lines = append(lines, Line{
			Product:    product,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}

	return lines, subtotal, nil
}
