package models

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"    // Placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // Terminal, stock restored

	PaymentQcellMoney    PaymentMethod = "qcell_money"
	PaymentAfricellMoney PaymentMethod = "africell_money"
	PaymentWave          PaymentMethod = "wave"
	PaymentTrustBank     PaymentMethod = "trustBank"
	PaymentPaypal        PaymentMethod = "paypal"
)

// orderNumberPrefix plus eight random digits, e.g. MRC48151623.
const orderNumberPrefix = "MRC"

// ParseOrderStatus maps a status token to one of the five order statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(strings.ToLower(strings.TrimSpace(s))), true
	}
	return "", false
}

// ParsePaymentMethod maps a payment token to a supported method.
// trustBank is matched case-insensitively like the rest.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, m := range []PaymentMethod{
		PaymentQcellMoney, PaymentAfricellMoney, PaymentWave,
		PaymentTrustBank, PaymentPaypal,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, true
		}
	}
	return "", false
}

// ShippingAddress is the address snapshot stored on the order as JSON.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

func (a ShippingAddress) Empty() bool {
	return a == ShippingAddress{}
}

func (a ShippingAddress) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (a *ShippingAddress) Scan(src interface{}) error {
	if src == nil {
		*a = ShippingAddress{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("shipping_address: unsupported column type")
	}
	if len(data) == 0 {
		*a = ShippingAddress{}
		return nil
	}
	return json.Unmarshal(data, a)
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	OrderNumber     string          `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending';not null" json:"status"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20);not null" json:"payment_method"`
	PaymentStatus   string          `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_amount"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress ShippingAddress `gorm:"type:text" json:"shipping_address"`
	Notes           string          `gorm:"type:text" json:"notes"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the unit price at checkout time. Later product
// edits never change historical order lines.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint            `gorm:"index;not null" json:"order_id"`
	ProductID  uint            `gorm:"not null" json:"product_id"`
	Product    Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CanCancel reports whether the order may still be cancelled.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// GenerateOrderNumber returns a fresh candidate order number. Uniqueness
// is enforced by the caller against the orders table.
func GenerateOrderNumber() string {
	const digits = "0123456789"
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure means a broken platform
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return orderNumberPrefix + string(buf)
}
