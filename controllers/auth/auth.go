package authControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiture99/Marche/config"
	"github.com/fiture99/Marche/middleware"
	"github.com/fiture99/Marche/models"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"omitempty,oneof=customer vendor"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// POST /auth/register
//
// Customers are active immediately. Vendor registrations create an
// inactive user plus a pending vendor record awaiting admin approval,
// and no tokens are issued until approval.
func Register(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}

		role := models.RoleCustomer
		isActive := true
		if input.Role == "vendor" {
			role = models.RoleVendor
			isActive = false
		}

		user := models.User{
			Email:     strings.ToLower(input.Email),
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Phone:     input.Phone,
			Role:      role,
			IsActive:  isActive,
		}
		if err := user.SetPassword(input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if role == models.RoleVendor {
				vendor := models.Vendor{
					UserID: user.ID,
					Name:   user.FullName(),
					Email:  user.Email,
					Phone:  user.Phone,
					Status: models.VendorStatusPending,
				}
				return tx.Create(&vendor).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed", "message": err.Error()})
			return
		}

		response := gin.H{
			"message": "User registered successfully",
			"user":    user,
		}
		if isActive {
			access, refresh, err := issueTokenPair(jwtCfg, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
				return
			}
			response["access_token"] = access
			response["refresh_token"] = refresh
		} else {
			response["info"] = "Vendor registration pending validation by admin"
		}
		c.JSON(http.StatusCreated, response)
	}
}

// POST /auth/login
func Login(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": err.Error()})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.CheckPassword(input.Password)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		access, refresh, err := issueTokenPair(jwtCfg, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Login successful",
			"user":          user,
			"access_token":  access,
			"refresh_token": refresh,
		})
	}
}

// POST /auth/refresh — exchanges a refresh token for a new access token.
func Refresh(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
			return
		}

		claims, err := middleware.ParseToken(jwtCfg.Secret, input.RefreshToken)
		if err != nil || claims.TokenType != "refresh" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}

		access, err := middleware.IssueToken(jwtCfg.Secret, user.ID, "access", jwtCfg.AccessTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": access, "user": user})
	}
}

// GET /auth/me
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PUT /auth/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input struct {
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			Phone     *string `json:"phone"`
			Avatar    *string `json:"avatar"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if input.FirstName != nil {
			user.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			user.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Avatar != nil {
			user.Avatar = *input.Avatar
		}

		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}

// PUT /auth/change-password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": err.Error()})
			return
		}

		if !user.CheckPassword(input.CurrentPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		if err := user.SetPassword(input.NewPassword); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password change failed"})
			return
		}
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password change failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

func issueTokenPair(jwtCfg config.JWTConfig, userID uint) (access, refresh string, err error) {
	access, err = middleware.IssueToken(jwtCfg.Secret, userID, "access", jwtCfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = middleware.IssueToken(jwtCfg.Secret, userID, "refresh", jwtCfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}
