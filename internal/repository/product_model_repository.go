package repository

import (
	"catalog/internal/domain/model"
	"context"
)

// 型番の永続化。FindByID / Listは所属カテゴリもまとめて取る。
type ProductModelRepository interface {
	List(ctx context.Context) ([]model.ProductModel, error)
	FindByID(ctx context.Context, id int64) (model.ProductModel, error)
	Create(ctx context.Context, m *model.ProductModel) error
	Update(ctx context.Context, m *model.ProductModel) error
	Delete(ctx context.Context, id int64) error
}
