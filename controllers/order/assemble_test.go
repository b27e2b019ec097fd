package orderControllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fiture99/Marche/config"
	"github.com/fiture99/Marche/models"
)

func testAssembler(strict bool) *Assembler {
	return NewAssembler(config.CheckoutConfig{
		ShippingFlatRate: decimal.RequireFromString("5.00"),
		FreeShippingMin:  decimal.RequireFromString("50.00"),
		StrictStatus:     strict,
	}, zap.NewNop())
}

func testLines(price string, quantity int) ([]Line, decimal.Decimal) {
	unit := decimal.RequireFromString(price)
	total := unit.Mul(decimal.NewFromInt(int64(quantity)))
	lines := []Line{{
		Product:    models.Product{ID: 1, Name: "Basket", Price: unit, Stock: 10},
		Quantity:   quantity,
		UnitPrice:  unit,
		TotalPrice: total,
	}}
	return lines, total
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{Street: "12 Siaka Stevens St", City: "Freetown", Country: "SL"}
}

func TestAssembleComputesTotals(t *testing.T) {
	asm := testAssembler(false)
	lines, subtotal := testLines("10.00", 2)

	order, err := asm.Assemble(AssembleInput{
		UserID:          1,
		Lines:           lines,
		Subtotal:        subtotal,
		PaymentMethod:   "wave",
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, order.TaxAmount.Equal(decimal.Zero))
	assert.True(t, order.ShippingAmount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentWave, order.PaymentMethod)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestShippingFeeThreshold(t *testing.T) {
	asm := testAssembler(false)

	// One cent below the threshold pays the flat fee.
	fee := asm.ShippingFee(decimal.RequireFromString("49.99"))
	assert.True(t, fee.Equal(decimal.RequireFromString("5.00")))

	// Exactly at the threshold ships free.
	fee = asm.ShippingFee(decimal.RequireFromString("50.00"))
	assert.True(t, fee.Equal(decimal.Zero))

	fee = asm.ShippingFee(decimal.RequireFromString("120.50"))
	assert.True(t, fee.Equal(decimal.Zero))
}

func TestAssembleTotalOverride(t *testing.T) {
	asm := testAssembler(false)
	lines, subtotal := testLines("10.00", 2)

	override := decimal.RequireFromString("99.99")
	order, err := asm.Assemble(AssembleInput{
		UserID:          1,
		Lines:           lines,
		Subtotal:        subtotal,
		PaymentMethod:   "paypal",
		ShippingAddress: validAddress(),
		TotalOverride:   &override,
	})
	require.NoError(t, err)

	// Override is used verbatim; the component amounts stay computed.
	assert.True(t, order.TotalAmount.Equal(override))
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, order.ShippingAmount.Equal(decimal.RequireFromString("5.00")))
}

func TestAssembleRejectsUnknownPaymentMethod(t *testing.T) {
	asm := testAssembler(false)
	lines, subtotal := testLines("10.00", 1)

	_, err := asm.Assemble(AssembleInput{
		UserID:          1,
		Lines:           lines,
		Subtotal:        subtotal,
		PaymentMethod:   "cash_under_the_table",
		ShippingAddress: validAddress(),
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestAssembleRejectsEmptyAddress(t *testing.T) {
	asm := testAssembler(false)
	lines, subtotal := testLines("10.00", 1)

	_, err := asm.Assemble(AssembleInput{
		UserID:        1,
		Lines:         lines,
		Subtotal:      subtotal,
		PaymentMethod: "wave",
	})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestResolveStatusLenient(t *testing.T) {
	asm := testAssembler(false)

	status, err := asm.resolveStatus("")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, status)

	status, err = asm.resolveStatus("processing")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, status)

	status, err = asm.resolveStatus("pending_payment")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, status)

	// Unknown tokens coerce to pending in lenient mode.
	status, err = asm.resolveStatus("definitely_not_a_status")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, status)
}

func TestResolveStatusStrict(t *testing.T) {
	asm := testAssembler(true)

	_, err := asm.resolveStatus("definitely_not_a_status")
	assert.ErrorIs(t, err, ErrValidationFailed)

	status, err := asm.resolveStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)
}

func TestJoinNotes(t *testing.T) {
	assert.Equal(t, "", joinNotes("", ""))
	assert.Equal(t, "leave at the gate", joinNotes("", "leave at the gate"))
	assert.Equal(t, "Payment Reference: TX-123", joinNotes("TX-123", ""))
	assert.Equal(t, "Payment Reference: TX-123\nleave at the gate", joinNotes("TX-123", "leave at the gate"))
}
