package models

import "time"

type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"   // Awaiting admin approval
	VendorStatusApproved  VendorStatus = "approved"  // Can list and sell products
	VendorStatusRejected  VendorStatus = "rejected"  // Application turned down
	VendorStatusSuspended VendorStatus = "suspended" // Temporarily blocked by admin
)

type Vendor struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	Email       string       `gorm:"not null" json:"email"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	Status      VendorStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Products    []Product    `gorm:"foreignKey:VendorID" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
