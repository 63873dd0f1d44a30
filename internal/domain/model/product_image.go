package model

// ProductImageは商品写真。URLはストレージ側の公開URL（products/配下）
type ProductImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"index;not null" json:"product"`
	URL       string `gorm:"type:varchar(1000);not null" json:"image"`
}
