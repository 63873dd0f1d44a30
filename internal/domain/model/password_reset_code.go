package model

import "time"

// PasswordResetCodeはメール所有の証明に使う6桁コード。
// 同じメールに対しては論理的に1件だけ有効（新規発行時に古い行を削除）。
type PasswordResetCode struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"type:varchar(255);index;not null"`
	Code      string    `gorm:"type:varchar(6);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}
