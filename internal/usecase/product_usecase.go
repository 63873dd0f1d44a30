package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// 一覧キャッシュは固定キー1つ（フィルタなしの一覧だけが対象）
const (
	productListCacheKey = "product_list"
	productListCacheTTL = 120 * time.Second
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	modelRepo    repo.ProductModelRepository
	cache        Cache
	storage      ImageStorage
	idGen        IDGenerator
	validate     *validator.Validate
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	modelRepo repo.ProductModelRepository,
	cache Cache,
	storage ImageStorage,
	idGen IDGenerator,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		modelRepo:    modelRepo,
		cache:        cache,
		storage:      storage,
		idGen:        idGen,
		validate:     validator.New(),
	}
}

// =====================
// 出力の形（一覧用と詳細用の2種類）
// =====================

// 一覧用の最小表現。first_imageは先頭画像のURL（なければnull）。
type ProductSummary struct {
	ID          int64   `json:"id"`
	UUID        string  `json:"uuid"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	FirstImage  *string `json:"first_image"`
}

type ProductImageOutput struct {
	Image string `json:"image"`
}

// 詳細用の全項目表現。
type ProductDetail struct {
	ID            int64                `json:"id"`
	UUID          string               `json:"uuid"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Price         int64                `json:"price"`
	CreatedAt     time.Time            `json:"created_at"`
	Size          string               `json:"size"`
	IsActive      bool                 `json:"is_active"`
	CategoryID    *int64               `json:"category"`
	ModelID       *int64               `json:"model"`
	CategoryTitle *string              `json:"category_title"`
	ModelTitle    *string              `json:"model_title"`
	Images        []ProductImageOutput `json:"images"`
}

func toProductSummary(p model.Product) ProductSummary {
	s := ProductSummary{
		ID:          p.ID,
		UUID:        p.UUID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
	}
	if len(p.Images) > 0 {
		url := p.Images[0].URL
		s.FirstImage = &url
	}
	return s
}

func toProductDetail(p model.Product) ProductDetail {
	d := ProductDetail{
		ID:          p.ID,
		UUID:        p.UUID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		Size:        p.Size,
		IsActive:    p.IsActive,
		CategoryID:  p.CategoryID,
		ModelID:     p.ModelID,
		Images:      make([]ProductImageOutput, 0, len(p.Images)),
	}
	if p.Category != nil {
		d.CategoryTitle = &p.Category.Title
	}
	if p.Model != nil {
		d.ModelTitle = &p.Model.Title
	}
	for _, img := range p.Images {
		d.Images = append(d.Images, ProductImageOutput{Image: img.URL})
	}
	return d
}

// =====================
// 一覧（キャッシュ契約つき）
// =====================

// GET /productsの入力DTO。数値のパースはhandler側（不正な値は400）。
type ListProductsInput struct {
	CategoryID *int64
	ModelID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Search     string
	Ordering   string
}

// フィルタが1つでも付いているか
func (in ListProductsInput) filtered() bool {
	return in.CategoryID != nil || in.ModelID != nil ||
		in.MinPrice != nil || in.MaxPrice != nil ||
		strings.TrimSpace(in.Search) != "" || in.Ordering != ""
}

// Listはシリアライズ済みJSONを返す。
// フィルタなしの一覧だけが固定キーのキャッシュ対象（TTL 120秒）になり、
// キャッシュヒット時はバイト単位で同一のレスポンスになる。
func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]byte, error) {
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return nil, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	if !validOrdering(in.Ordering) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid ordering")
	}

	cacheable := !in.filtered()

	if cacheable {
		cached, err := u.cache.Get(ctx, productListCacheKey)
		if err != nil {
			// キャッシュ障害は読み取りではDB直行に切り替える
			log.Warn().Err(err).Str("key", productListCacheKey).Msg("cache get failed")
		}
		if cached != nil {
			return cached, nil
		}
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		ModelID:    in.ModelID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Search:     strings.TrimSpace(in.Search),
		Ordering:   in.Ordering,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	summaries := make([]ProductSummary, 0, len(items))
	for _, p := range items {
		summaries = append(summaries, toProductSummary(p))
	}

	body, err := json.Marshal(summaries)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if cacheable {
		if err := u.cache.Set(ctx, productListCacheKey, body, productListCacheTTL); err != nil {
			// 書き込み失敗でもレスポンスは返せる
			log.Warn().Err(err).Str("key", productListCacheKey).Msg("cache set failed")
		}
	}

	return body, nil
}

// orderingはフィールド名のホワイトリスト（"-"で降順）。空は新着順。
func validOrdering(ordering string) bool {
	if ordering == "" {
		return true
	}
	switch strings.TrimPrefix(ordering, "-") {
	case "created_at", "price", "title", "id":
		return true
	}
	return false
}

// =====================
// 詳細
// =====================

func (u *ProductUsecase) GetByUUID(ctx context.Context, uuid string) (ProductDetail, error) {
	p, err := u.productRepo.FindByUUID(ctx, uuid)
	if err == repo.ErrNotFound {
		return ProductDetail{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductDetail(p), nil
}

// =====================
// 作成（画像つき）
// =====================

// アップロードされた画像1枚
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       int64
	Size        string
	CategoryID  *int64
	ModelID     *int64
	Images      []ImageUpload
}

// バリデーション対象のフィールドだけを抜き出した形
type productFields struct {
	Title string `validate:"min=3"`
	Price int64  `validate:"gt=0"`
	Size  string `validate:"max=10"`
}

// Createは入力検証→画像アップロード→DB保存→キャッシュ無効化の順。
// 検証に失敗したらどこにも書き込まない。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductDetail, error) {
	fields, err := u.validateProduct(ctx, productFields{
		Title: strings.TrimSpace(in.Title),
		Price: in.Price,
		Size:  in.Size,
	}, in.CategoryID, in.ModelID)
	if err != nil {
		return ProductDetail{}, err
	}
	if len(fields) > 0 {
		return ProductDetail{}, NewValidationError(fields)
	}

	uuid := u.idGen.NewID()

	p := model.Product{
		UUID:        uuid,
		CategoryID:  in.CategoryID,
		ModelID:     in.ModelID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Size:        in.Size,
		IsActive:    true,
	}

	// 画像を先にストレージへ。途中で失敗したら上げた分を消して中断。
	var uploaded []string
	for i, img := range in.Images {
		path := fmt.Sprintf("products/%s/%d_%s", uuid, i+1, filepath.Base(img.Filename))
		url, err := u.storage.Upload(ctx, path, img.Content, img.ContentType)
		if err != nil {
			u.cleanupImages(ctx, uploaded)
			return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "failed to store image")
		}
		uploaded = append(uploaded, url)
		p.Images = append(p.Images, model.ProductImage{URL: url})
	}

	// 商品と画像行は同一トランザクションで保存される
	if err := u.productRepo.Create(ctx, &p); err != nil {
		u.cleanupImages(ctx, uploaded)
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cache.Del(ctx, productListCacheKey); err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "cache error")
	}

	// カテゴリ・型番のタイトルを含めた形で返す
	created, err := u.productRepo.FindByUUID(ctx, uuid)
	if err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductDetail(created), nil
}

func (u *ProductUsecase) cleanupImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := u.storage.Delete(ctx, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete uploaded image")
		}
	}
}

// validateProductはフィールド規則と、カテゴリ・型番の整合性をまとめて検証する。
// フィールド別メッセージを全部まとめて返す。
func (u *ProductUsecase) validateProduct(ctx context.Context, pf productFields, categoryID *int64, modelID *int64) (map[string]string, error) {
	fields := map[string]string{}

	if err := u.validate.Struct(pf); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
	}

	if categoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *categoryID); err == repo.ErrNotFound {
			fields["category"] = "category not found"
		} else if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if modelID != nil {
		m, err := u.modelRepo.FindByID(ctx, *modelID)
		if err == repo.ErrNotFound {
			fields["model"] = "model not found"
		} else if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		} else if categoryID != nil {
			// 両方指定されたら、型番は選んだカテゴリに属していること
			if m.CategoryID == nil || *m.CategoryID != *categoryID {
				fields["model"] = "model does not belong to the selected category"
			}
		}
	}

	return fields, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "required":
		return "is required"
	}
	return "is invalid"
}

// =====================
// 更新（全置換・部分）
// =====================

// nilのフィールドはPATCHでは「変更なし」。PUTではhandlerが全フィールドを詰める。
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *int64
	Size        *string
	CategoryID  *int64
	ModelID     *int64
	IsActive    *bool
}

// Updateはuuidで商品を特定し、検証済みの変更を適用する。
// fullがtrueのときはcategory/modelのnilを「外す」として扱う。
func (u *ProductUsecase) Update(ctx context.Context, uuid string, in UpdateProductInput, full bool) (ProductDetail, error) {
	p, err := u.productRepo.FindByUUID(ctx, uuid)
	if err == repo.ErrNotFound {
		return ProductDetail{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if full || in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if full || in.ModelID != nil {
		p.ModelID = in.ModelID
	}

	fields, err := u.validateProduct(ctx, productFields{
		Title: p.Title,
		Price: p.Price,
		Size:  p.Size,
	}, p.CategoryID, p.ModelID)
	if err != nil {
		return ProductDetail{}, err
	}
	if len(fields) > 0 {
		return ProductDetail{}, NewValidationError(fields)
	}

	if err := u.productRepo.Update(ctx, &p); err == repo.ErrNotFound {
		return ProductDetail{}, NewHTTPError(http.StatusNotFound, "product not found")
	} else if err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cache.Del(ctx, productListCacheKey); err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "cache error")
	}

	updated, err := u.productRepo.FindByUUID(ctx, uuid)
	if err != nil {
		return ProductDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductDetail(updated), nil
}

// =====================
// 削除
// =====================

// Deleteは行と画像行を消し、ストレージの画像も後始末する。
func (u *ProductUsecase) Delete(ctx context.Context, uuid string) error {
	p, err := u.productRepo.FindByUUID(ctx, uuid)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, p.ID); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ファイルの後始末は失敗してもロールバックしない
	for _, img := range p.Images {
		if err := u.storage.Delete(ctx, img.URL); err != nil {
			log.Warn().Err(err).Str("url", img.URL).Msg("failed to delete image file")
		}
	}

	if err := u.cache.Del(ctx, productListCacheKey); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}

	return nil
}
