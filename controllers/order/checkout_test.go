package orderControllers

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection so every query sees the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

type fixture struct {
	db      *gorm.DB
	user    models.User
	product models.Product
}

func seedCheckout(t *testing.T, price string, stock int) fixture {
	t.Helper()
	db := openTestDB(t)

	user := models.User{Email: "amina@example.com", PasswordHash: "x", FirstName: "Amina", LastName: "Kamara"}
	require.NoError(t, db.Create(&user).Error)

	owner := models.User{Email: "vendor@example.com", PasswordHash: "x", FirstName: "Musa", LastName: "Sesay", Role: models.RoleVendor}
	require.NoError(t, db.Create(&owner).Error)

	vendor := models.Vendor{UserID: owner.ID, Name: "Musa's Shop", Email: owner.Email, Status: models.VendorStatusApproved}
	require.NoError(t, db.Create(&vendor).Error)

	category := models.Category{Name: "Crafts", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		VendorID:   vendor.ID,
		CategoryID: category.ID,
		Name:       "Woven Basket",
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)

	return fixture{db: db, user: user, product: product}
}

func checkoutRequest(f fixture, quantity int) CreateOrderRequest {
	return CreateOrderRequest{
		Items:         []ItemRequest{{ProductID: f.product.ID, Quantity: quantity}},
		PaymentMethod: "wave",
		ShippingAddress: models.ShippingAddress{
			Street: "12 Siaka Stevens St", City: "Freetown", Country: "SL",
		},
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	// The user had the product in the cart before checking out.
	cartItem := models.CartItem{UserID: f.user.ID, ProductID: f.product.ID, Quantity: 2}
	require.NoError(t, f.db.Create(&cartItem).Error)

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 2))
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, order.TaxAmount.Equal(decimal.Zero))
	assert.True(t, order.ShippingAmount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Regexp(t, regexp.MustCompile(`^MRC\d{8}$`), order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))

	// Stock decremented.
	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 3, product.Stock)

	// Cart line for the ordered product removed.
	var cartCount int64
	f.db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	assert.EqualValues(t, 0, cartCount)
}

func TestCreateOrderPriceSnapshot(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 1))
	require.NoError(t, err)

	// A later price change must not touch the historical line.
	require.NoError(t, f.db.Model(&models.Product{}).
		Where("id = ?", f.product.ID).
		Update("price", decimal.RequireFromString("42.00")).Error)

	var item models.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateOrderInsufficientStockLeavesNoTrace(t *testing.T) {
	f := seedCheckout(t, "10.00", 2)
	asm := testAssembler(false)

	cartItem := models.CartItem{UserID: f.user.ID, ProductID: f.product.ID, Quantity: 3}
	require.NoError(t, f.db.Create(&cartItem).Error)

	_, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 3))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// No partial effects: stock, orders and cart all untouched.
	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 2, product.Stock)

	var orderCount, itemCount, cartCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	f.db.Model(&models.OrderItem{}).Count(&itemCount)
	f.db.Model(&models.CartItem{}).Count(&cartCount)
	assert.EqualValues(t, 0, orderCount)
	assert.EqualValues(t, 0, itemCount)
	assert.EqualValues(t, 1, cartCount)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := seedCheckout(t, "10.00", 2)
	asm := testAssembler(false)

	req := checkoutRequest(f, 1)
	req.Items = []ItemRequest{{ProductID: 9999, Quantity: 1}}

	_, err := CreateOrder(f.db, asm, 5, f.user.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	f := seedCheckout(t, "10.00", 2)
	asm := testAssembler(false)

	require.NoError(t, f.db.Model(&models.Product{}).
		Where("id = ?", f.product.ID).
		Update("is_active", false).Error)

	_, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	f := seedCheckout(t, "10.00", 2)
	asm := testAssembler(false)

	_, err := CreateOrder(f.db, asm, 5, 9999, checkoutRequest(f, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderExactlyOneWinnerForLastStock(t *testing.T) {
	f := seedCheckout(t, "10.00", 3)
	asm := testAssembler(false)

	// Two checkouts contend for the same three units. The conditional
	// decrement guarantees the second cannot oversell.
	_, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 3))
	require.NoError(t, err)

	_, err = CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 3))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 0, product.Stock)
}

func TestCreateOrderTotalAndStatusOverride(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	override := decimal.RequireFromString("30.00")
	req := checkoutRequest(f, 2)
	req.TotalAmount = &override
	req.Status = "processing"
	req.PaymentReference = "WAVE-REF-42"
	req.Notes = "call on arrival"

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, req)
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(override))
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "Payment Reference: WAVE-REF-42\ncall on arrival", order.Notes)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 2))
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	require.Equal(t, 3, product.Stock)

	cancelled, err := CancelOrder(f.db, f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 5, product.Stock)

	// Cancelling twice fails and must not restore stock again.
	_, err = CancelOrder(f.db, f.user.ID, order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 5, product.Stock)
}

func TestCancelOrderWrongUser(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 1))
	require.NoError(t, err)

	intruder := models.User{Email: "other@example.com", PasswordHash: "x", FirstName: "O", LastName: "T"}
	require.NoError(t, f.db.Create(&intruder).Error)

	_, err = CancelOrder(f.db, intruder.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)
	asm := testAssembler(false)

	order, err := CreateOrder(f.db, asm, 5, f.user.ID, checkoutRequest(f, 1))
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	_, err = CancelOrder(f.db, f.user.ID, order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateItemsIsReadOnly(t *testing.T) {
	f := seedCheckout(t, "15.50", 4)

	lines, subtotal, err := ValidateItems(f.db, []ItemRequest{{ProductID: f.product.ID, Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, subtotal.Equal(decimal.RequireFromString("31.00")))

	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 4, product.Stock)
}

func TestUniqueOrderNumberRetries(t *testing.T) {
	f := seedCheckout(t, "10.00", 5)

	number, err := uniqueOrderNumber(f.db, 5)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^MRC\d{8}$`), number)
}
