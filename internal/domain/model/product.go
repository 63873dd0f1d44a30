package model

import (
	"time"
)

type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	CategoryID  *int64         `gorm:"index" json:"category"`
	Category    *Category      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ModelID     *int64         `gorm:"index" json:"model"`
	Model       *ProductModel  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string         `gorm:"type:varchar(155);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Size        string         `gorm:"type:varchar(55)" json:"size"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	Images      []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}
