package model

import "time"

type Book struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"type:varchar(155);not null" json:"title"`
	Author     string    `gorm:"type:varchar(155)" json:"author"`
	Price      int64     `gorm:"not null" json:"price"`
	CategoryID *int64    `gorm:"index" json:"category"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
