package repository

import (
	"context"
	"errors"
	"strings"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、カテゴリ/型番/価格帯/検索/ソート付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Preload("Images").
		Preload("Category").
		Preload("Model")

	// 公開（is_active=true）のものだけ
	tx = tx.Where("is_active = ?", true)

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.ModelID != nil {
		tx = tx.Where("model_id = ?", *q.ModelID)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	// searchはtitleを対象（大文字小文字を無視）
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("title ILIKE ?", like)
	}

	tx = tx.Order(orderClause(q.Ordering))

	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

// orderClauseはホワイトリスト済みのordering値をSQLに変換する。
// 値の検証はusecase側で済んでいる。デフォルトは新着順。
func orderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	switch field {
	case "price", "title", "created_at", "id":
	default:
		return "created_at desc, id desc"
	}

	if desc {
		return field + " desc"
	}
	return field + " asc"
}

// UUIDで商品を取得（画像・カテゴリ・型番も一緒に）
func (r *ProductGormRepository) FindByUUID(ctx context.Context, uuid string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Preload("Model").
		Where("uuid = ?", uuid).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成。Imagesも同じINSERTのトランザクションで保存される。
func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return err
	}
	return nil
}

// 商品の更新。uuid・created_at・画像は変更しない。
func (r *ProductGormRepository) Update(ctx context.Context, p *model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id": p.CategoryID,
		"model_id":    p.ModelID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"size":        p.Size,
		"is_active":   p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除。画像行も同時に消す。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
