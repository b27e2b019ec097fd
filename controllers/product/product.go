package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/models"
)

// GET /products — public catalog, active products of approved vendors only.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage := pagination(c, 20)

		query := db.Model(&models.Product{}).
			Joins("JOIN vendors ON vendors.id = products.vendor_id").
			Where("products.is_active = ? AND vendors.status = ?", true, models.VendorStatusApproved)

		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
		}
		if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
			query = query.Where("products.category_id = ?", categoryID)
		}
		if vendorID, err := strconv.Atoi(c.Query("vendor_id")); err == nil {
			query = query.Where("products.vendor_id = ?", vendorID)
		}
		if minPrice := c.Query("min_price"); minPrice != "" {
			query = query.Where("products.price >= ?", minPrice)
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			query = query.Where("products.price <= ?", maxPrice)
		}
		if c.Query("featured") == "true" {
			query = query.Where("products.is_featured = ?", true)
		}

		switch c.DefaultQuery("sort_by", "newest") {
		case "price_low":
			query = query.Order("products.price ASC")
		case "price_high":
			query = query.Order("products.price DESC")
		case "rating":
			query = query.Order("products.rating DESC")
		case "name":
			query = query.Order("products.name ASC")
		default:
			query = query.Order("products.created_at DESC")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var products []models.Product
		if err := query.
			Preload("Vendor").
			Preload("Category").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"pagination": paginationMeta(page, perPage, total),
		})
	}
}

// GET /products/:productID
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productID")

		var product models.Product
		err := db.
			Joins("JOIN vendors ON vendors.id = products.vendor_id").
			Where("products.id = ? AND products.is_active = ? AND vendors.status = ?",
				productID, true, models.VendorStatusApproved).
			Preload("Vendor").
			Preload("Category").
			First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func pagination(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func paginationMeta(page, perPage int, total int64) gin.H {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return gin.H{
		"page":     page,
		"pages":    pages,
		"per_page": perPage,
		"total":    total,
		"has_next": page < pages,
		"has_prev": page > 1,
	}
}
