package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^MRC\d{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	// Collisions are possible but a run of 100 should not be constant.
	assert.Greater(t, len(seen), 1)
}

func TestParseOrderStatus(t *testing.T) {
	for _, token := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, ok := ParseOrderStatus(token)
		assert.True(t, ok, token)
		assert.EqualValues(t, token, status)
	}

	status, ok := ParseOrderStatus("  Shipped ")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, status)

	_, ok = ParseOrderStatus("returned")
	assert.False(t, ok)
	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	for token, want := range map[string]PaymentMethod{
		"qcell_money":    PaymentQcellMoney,
		"africell_money": PaymentAfricellMoney,
		"wave":           PaymentWave,
		"trustBank":      PaymentTrustBank,
		"TRUSTBANK":      PaymentTrustBank,
		"paypal":         PaymentPaypal,
	} {
		method, ok := ParsePaymentMethod(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, method)
	}

	_, ok := ParsePaymentMethod("bitcoin")
	assert.False(t, ok)
}

func TestOrderCanCancel(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanCancel())
	assert.True(t, (&Order{Status: OrderStatusProcessing}).CanCancel())
	assert.False(t, (&Order{Status: OrderStatusShipped}).CanCancel())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanCancel())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanCancel())
}

func TestShippingAddressRoundTrip(t *testing.T) {
	addr := ShippingAddress{Street: "12 Siaka Stevens St", City: "Freetown", Country: "SL"}
	assert.False(t, addr.Empty())
	assert.True(t, ShippingAddress{}.Empty())

	value, err := addr.Value()
	assert.NoError(t, err)

	var decoded ShippingAddress
	assert.NoError(t, decoded.Scan(value))
	assert.Equal(t, addr, decoded)
}

func TestUserPassword(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("hunter22"))
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.True(t, u.CheckPassword("hunter22"))
	assert.False(t, u.CheckPassword("hunter23"))
}
