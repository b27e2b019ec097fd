package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ImageList is a JSON-encoded list of image URLs stored in a text column.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("images: unsupported column type")
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID    uint            `gorm:"index;not null" json:"vendor_id"`
	Vendor      Vendor          `gorm:"foreignKey:VendorID" json:"vendor"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID" json:"category"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Images      ImageList       `gorm:"type:text" json:"images"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	ReviewCount int             `gorm:"default:0" json:"review_count"`
	IsFeatured  bool            `gorm:"default:false" json:"is_featured"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) IsInStock() bool {
	return p.Stock > 0
}
