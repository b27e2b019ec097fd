package categoryControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/models"
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GET /categories/:categoryID
func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		err := db.Where("id = ? AND is_active = ?", c.Param("categoryID"), true).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// POST /categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": err.Error()})
			return
		}

		var existing models.Category
		if err := db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}

		category := models.Category{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Icon:        input.Icon,
			IsActive:    true,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Category creation failed", "message": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
	}
}

// PUT /categories/:categoryID (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("categoryID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Icon        *string `json:"icon"`
			IsActive    *bool   `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if input.Name != nil {
			var existing models.Category
			if err := db.Where("name = ? AND id <> ?", *input.Name, category.ID).First(&existing).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
				return
			}
			category.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.Icon != nil {
			category.Icon = *input.Icon
		}
		if input.IsActive != nil {
			category.IsActive = *input.IsActive
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Category update failed", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
	}
}

// DELETE /categories/:categoryID (admin) — refused while products
// still reference the category.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("categoryID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var productCount int64
		if err := db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if productCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete category with existing products"})
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Category deletion failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
