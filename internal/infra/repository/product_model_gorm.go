package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"

	"gorm.io/gorm"
)

type ProductModelGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductModelGormRepository(db *gorm.DB) *ProductModelGormRepository {
	return &ProductModelGormRepository{db: db}
}

func (r *ProductModelGormRepository) List(ctx context.Context) ([]model.ProductModel, error) {
	var models []model.ProductModel
	if err := r.db.WithContext(ctx).Preload("Category").Order("id asc").Find(&models).Error; err != nil {
		return []model.ProductModel{}, err
	}
	return models, nil
}

func (r *ProductModelGormRepository) FindByID(ctx context.Context, id int64) (model.ProductModel, error) {
	var m model.ProductModel
	err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductModel{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductModel{}, err
	}
	return m, nil
}

func (r *ProductModelGormRepository) Create(ctx context.Context, m *model.ProductModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ProductModelGormRepository) Update(ctx context.Context, m *model.ProductModel) error {
	res := r.db.WithContext(ctx).Model(&model.ProductModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"title":       m.Title,
		"category_id": m.CategoryID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductModelGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ProductModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
