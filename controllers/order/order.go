package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/middleware"
	"github.com/fiture99/Marche/models"
)

// GET /orders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			respondError(c, ErrUnauthorized)
			return
		}

		page, perPage := pagination(c, 10)

		query := db.Model(&models.Order{}).Where("user_id = ?", userID)
		if status := c.Query("status"); status != "" {
			parsed, ok := models.ParseOrderStatus(status)
			if !ok {
				respondError(c, fmt.Errorf("%w: invalid status %q", ErrValidationFailed, status))
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var orders []models.Order
		if err := query.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":     orders,
			"pagination": paginationMeta(page, perPage, total),
		})
	}
}

// GET /orders/:orderID
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			respondError(c, ErrUnauthorized)
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			respondError(c, fmt.Errorf("%w: invalid order id", ErrValidationFailed))
			return
		}

		var order models.Order
		err = db.
			Preload("Items").
			Preload("Items.Product").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, fmt.Errorf("%w: order %d", ErrNotFound, orderID))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
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
