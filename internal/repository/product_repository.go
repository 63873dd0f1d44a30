package repository

import (
	"catalog/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索（全条件AND）
type ProductListQuery struct {
	CategoryID *int64
	ModelID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Search     string
	Ordering   string
}

// 商品の永続化（保存・取得）だけを約束。
// Create / Update はImagesも同一トランザクションで保存する。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByUUID(ctx context.Context, uuid string) (model.Product, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}
