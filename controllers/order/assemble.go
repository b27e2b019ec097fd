package orderControllers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fiture99/Marche/config"
	"github.com/fiture99/Marche/models"
)

// TaxFunc computes tax for a subtotal. Kept pluggable so future tax
// rules slot in without touching the assembler.
type TaxFunc func(subtotal decimal.Decimal) decimal.Decimal

// ZeroTax is the current policy: no tax.
func ZeroTax(decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// Assembler builds an unsaved order aggregate from validated lines.
type Assembler struct {
	Tax              TaxFunc
	ShippingFlatRate decimal.Decimal
	FreeShippingMin  decimal.Decimal
	StrictStatus     bool
	log              *zap.Logger
}

func NewAssembler(cfg config.CheckoutConfig, log *zap.Logger) *Assembler {
	return &Assembler{
		Tax:              ZeroTax,
		ShippingFlatRate: cfg.ShippingFlatRate,
		FreeShippingMin:  cfg.FreeShippingMin,
		StrictStatus:     cfg.StrictStatus,
		log:              log,
	}
}

type AssembleInput struct {
	UserID           uint
	Lines            []Line
	Subtotal         decimal.Decimal
	PaymentMethod    string
	ShippingAddress  models.ShippingAddress
	Notes            string
	PaymentReference string
	TotalOverride    *decimal.Decimal
	StatusOverride   string
}

// Assemble validates the payment method and address, applies the pricing
// policy and returns an Order with its items, ready to persist. The
// order number is filled in by the orchestrator.
func (a *Assembler) Assemble(in AssembleInput) (*models.Order, error) {
	method, ok := models.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, in.PaymentMethod)
	}
	if in.ShippingAddress.Empty() {
		return nil, ErrInvalidAddress
	}

	status, err := a.resolveStatus(in.StatusOverride)
	if err != nil {
		return nil, err
	}

	tax := a.Tax(in.Subtotal)
	shipping := a.ShippingFee(in.Subtotal)
	total := in.Subtotal.Add(tax).Add(shipping)

	if in.TotalOverride != nil {
		a.log.Warn("caller-supplied total overrides computed amount",
			zap.Uint("user_id", in.UserID),
			zap.String("computed", total.String()),
			zap.String("override", in.TotalOverride.String()),
		)
		total = *in.TotalOverride
	}

	items := make([]models.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		items = append(items, models.OrderItem{
			ProductID:  line.Product.ID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}

	return &models.Order{
		UserID:          in.UserID,
		Status:          status,
		PaymentMethod:   method,
		Subtotal:        in.Subtotal,
		TaxAmount:       tax,
		ShippingAmount:  shipping,
		TotalAmount:     total,
		ShippingAddress: in.ShippingAddress,
		Notes:           joinNotes(in.PaymentReference, in.Notes),
		Items:           items,
	}, nil
}

// ShippingFee is the flat rate below the free-shipping threshold, zero
// at or above it.
func (a *Assembler) ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(a.FreeShippingMin) {
		return decimal.Zero
	}
	return a.ShippingFlatRate
}

// resolveStatus maps a caller-supplied status token to an order status.
// Lenient mode coerces unknown tokens to pending, matching the observed
// frontend contract; strict mode rejects them.
func (a *Assembler) resolveStatus(token string) (models.OrderStatus, error) {
	if token == "" {
		return models.OrderStatusPending, nil
	}
	if strings.EqualFold(strings.TrimSpace(token), "pending_payment") {
		return models.OrderStatusPending, nil
	}
	if status, ok := models.ParseOrderStatus(token); ok {
		return status, nil
	}
	if a.StrictStatus {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidationFailed, token)
	}
	a.log.Warn("unknown status token coerced to pending", zap.String("status", token))
	return models.OrderStatusPending, nil
}

func joinNotes(paymentReference, notes string) string {
	var parts []string
	if paymentReference != "" {
		parts = append(parts, "Payment Reference: "+paymentReference)
	}
	if notes != "" {
		parts = append(parts, notes)
	}
	return strings.Join(parts, "\n")
}
