package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()

	owner := models.User{Email: "vendor@example.com", PasswordHash: "x", FirstName: "M", LastName: "S", Role: models.RoleVendor}
	require.NoError(t, db.Create(&owner).Error)
	vendor := models.Vendor{UserID: owner.ID, Name: "Shop", Email: owner.Email, Status: models.VendorStatusApproved}
	require.NoError(t, db.Create(&vendor).Error)
	category := models.Category{Name: "Crafts", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		VendorID:   vendor.ID,
		CategoryID: category.ID,
		Name:       "Woven Basket",
		Price:      decimal.RequireFromString("10.00"),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// cartRouter fakes the auth middleware by injecting the user id.
func cartRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/cart", GetCart(db))
	r.POST("/cart/add", AddToCart(db))
	r.PUT("/cart/:itemID", UpdateCartItem(db))
	r.DELETE("/cart/:itemID", RemoveFromCart(db))
	r.DELETE("/cart/clear", ClearCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 5)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": product.ID, "quantity": 1})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", 1, product.ID).First(&item).Error)
	assert.Equal(t, 3, item.Quantity)
}

func TestAddToCartRejectsOverStock(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 2)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": product.ID, "quantity": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, 2)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemZeroDeletes(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 5)
	item := models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 2}
	require.NoError(t, db.Create(&item).Error)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), gin.H{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRemoveFromCartScopedToUser(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 5)
	item := models.CartItem{UserID: 2, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	// User 1 cannot delete user 2's cart line.
	r := cartRouter(db, 1)
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/%d", item.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartTotals(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 3}).Error)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total     decimal.Decimal `json:"total"`
		ItemCount int             `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 1, resp.ItemCount)
}

func TestClearCart(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}).Error)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodDelete, "/cart/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
