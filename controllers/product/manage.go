package productControllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/middleware"
	"github.com/fiture99/Marche/models"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	Images      []string        `json:"images"`
	Stock       int             `json:"stock" binding:"min=0"`
	IsFeatured  bool            `json:"is_featured"`
}

// approvedVendor resolves the authenticated user's approved vendor
// record, writing the error response itself when there is none.
func approvedVendor(c *gin.Context, db *gorm.DB) (*models.Vendor, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	var vendor models.Vendor
	if err := db.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only approved vendors can manage products"})
		return nil, false
	}
	if vendor.Status != models.VendorStatusApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only approved vendors can manage products"})
		return nil, false
	}
	return &vendor, true
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, ok := approvedVendor(c, db)
		if !ok {
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": err.Error()})
			return
		}
		if !input.Price.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		product := models.Product{
			VendorID:    vendor.ID,
			CategoryID:  input.CategoryID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Images:      input.Images,
			Stock:       input.Stock,
			IsFeatured:  input.IsFeatured,
			IsActive:    true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation failed", "message": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
	}
}

// PUT /products/:productID — own products only.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, ok := approvedVendor(c, db)
		if !ok {
			return
		}

		var product models.Product
		err := db.Where("id = ? AND vendor_id = ?", c.Param("productID"), vendor.ID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or access denied"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input struct {
			Name        *string          `json:"name"`
			Description *string          `json:"description"`
			Price       *decimal.Decimal `json:"price"`
			CategoryID  *uint            `json:"category_id"`
			Images      *[]string        `json:"images"`
			Stock       *int             `json:"stock"`
			IsFeatured  *bool            `json:"is_featured"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if !input.Price.IsPositive() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
				return
			}
			product.Price = *input.Price
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			product.CategoryID = *input.CategoryID
		}
		if input.Images != nil {
			product.Images = *input.Images
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
				return
			}
			product.Stock = *input.Stock
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product update failed", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
	}
}

// DELETE /products/:productID — soft delete, order history keeps its snapshots.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, ok := approvedVendor(c, db)
		if !ok {
			return
		}

		result := db.Model(&models.Product{}).
			Where("id = ? AND vendor_id = ?", c.Param("productID"), vendor.ID).
			Update("is_active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product deletion failed"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or access denied"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// GET /products/my-products
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var vendor models.Vendor
		if err := db.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor profile not found"})
			return
		}

		page, perPage := pagination(c, 20)
		query := db.Model(&models.Product{}).Where("vendor_id = ?", vendor.ID)
		if c.DefaultQuery("include_inactive", "false") != "true" {
			query = query.Where("is_active = ?", true)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var products []models.Product
		if err := query.
			Preload("Category").
			Order("created_at DESC").
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

// POST /products/upload — stores an image under the uploads dir and
// returns its public URL path.
func UploadProductImage(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := approvedVendor(c, db); !ok {
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		ext := filepath.Ext(file.Filename)
		switch ext {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		name := uuid.NewString() + ext
		dest := filepath.Join(uploadDir, "products", name)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"url":  "/uploads/products/" + name,
			"size": strconv.FormatInt(file.Size, 10),
		})
	}
}
