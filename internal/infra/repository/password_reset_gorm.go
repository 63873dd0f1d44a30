package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"

	"gorm.io/gorm"
)

type PasswordResetGormRepository struct {
	db *gorm.DB
}

// DI
func NewPasswordResetGormRepository(db *gorm.DB) *PasswordResetGormRepository {
	return &PasswordResetGormRepository{db: db}
}

func (r *PasswordResetGormRepository) Create(ctx context.Context, code *model.PasswordResetCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *PasswordResetGormRepository) Find(ctx context.Context, email string, code string) (model.PasswordResetCode, error) {
	var rec model.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ?", email, code).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PasswordResetCode{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PasswordResetCode{}, err
	}
	return rec, nil
}

// 同じメール宛の行をまとめて削除。0件でもエラーにしない。
func (r *PasswordResetGormRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.PasswordResetCode{}).Error
}
