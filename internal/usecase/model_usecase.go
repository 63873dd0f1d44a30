package usecase

import (
	"context"
	"net/http"
	"strings"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
)

type ModelUsecase struct {
	modelRepo    repo.ProductModelRepository
	categoryRepo repo.CategoryRepository
	cache        Cache
}

// DI
func NewModelUsecase(
	modelRepo repo.ProductModelRepository,
	categoryRepo repo.CategoryRepository,
	cache Cache,
) *ModelUsecase {
	return &ModelUsecase{
		modelRepo:    modelRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

type ModelInput struct {
	Title      string
	CategoryID *int64
}

// 出力にカテゴリ名を足した形
type ModelOutput struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	CategoryID    *int64  `json:"category"`
	CategoryTitle *string `json:"category_title"`
}

func toModelOutput(m model.ProductModel) ModelOutput {
	out := ModelOutput{
		ID:         m.ID,
		Title:      m.Title,
		CategoryID: m.CategoryID,
	}
	if m.Category != nil {
		out.CategoryTitle = &m.Category.Title
	}
	return out
}

func (u *ModelUsecase) List(ctx context.Context) ([]ModelOutput, error) {
	models, err := u.modelRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ModelOutput, 0, len(models))
	for _, m := range models {
		out = append(out, toModelOutput(m))
	}
	return out, nil
}

func (u *ModelUsecase) Get(ctx context.Context, id int64) (ModelOutput, error) {
	m, err := u.modelRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return ModelOutput{}, NewHTTPError(http.StatusNotFound, "model not found")
	}
	if err != nil {
		return ModelOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toModelOutput(m), nil
}

func (u *ModelUsecase) Create(ctx context.Context, in ModelInput) (ModelOutput, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return ModelOutput{}, err
	}

	m := model.ProductModel{Title: strings.TrimSpace(in.Title), CategoryID: in.CategoryID}
	if err := u.modelRepo.Create(ctx, &m); err != nil {
		return ModelOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidateProductList(ctx); err != nil {
		return ModelOutput{}, err
	}
	return u.Get(ctx, m.ID)
}

func (u *ModelUsecase) Update(ctx context.Context, id int64, in ModelInput) (ModelOutput, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return ModelOutput{}, err
	}

	m := model.ProductModel{ID: id, Title: strings.TrimSpace(in.Title), CategoryID: in.CategoryID}
	if err := u.modelRepo.Update(ctx, &m); err == repo.ErrNotFound {
		return ModelOutput{}, NewHTTPError(http.StatusNotFound, "model not found")
	} else if err != nil {
		return ModelOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidateProductList(ctx); err != nil {
		return ModelOutput{}, err
	}
	return u.Get(ctx, id)
}

func (u *ModelUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.modelRepo.Delete(ctx, id); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "model not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.invalidateProductList(ctx)
}

func (u *ModelUsecase) validateInput(ctx context.Context, in ModelInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "is required"
	}

	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err == repo.ErrNotFound {
			fields["category"] = "category not found"
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// 型番名は商品詳細の表示に混ざるので、変更時は商品一覧キャッシュも無効化する
func (u *ModelUsecase) invalidateProductList(ctx context.Context) error {
	if err := u.cache.Del(ctx, productListCacheKey); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	return nil
}
