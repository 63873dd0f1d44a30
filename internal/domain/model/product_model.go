package model

// ProductModelはカテゴリ配下の型番（任意でカテゴリに属する）
type ProductModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"type:varchar(155);not null" json:"title"`
	CategoryID *int64    `gorm:"index" json:"category"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
