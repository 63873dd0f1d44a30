package usecase

import (
	"context"
	"net/http"
	"strings"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	cache        Cache
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, cache Cache) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

type CategoryInput struct {
	Title string
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Category{}, NewValidationError(map[string]string{"title": "is required"})
	}

	c := model.Category{Title: title}
	if err := u.categoryRepo.Create(ctx, &c); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidateProductList(ctx); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Category{}, NewValidationError(map[string]string{"title": "is required"})
	}

	c := model.Category{ID: id, Title: title}
	if err := u.categoryRepo.Update(ctx, &c); err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	} else if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidateProductList(ctx); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.categoryRepo.Delete(ctx, id); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "category not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.invalidateProductList(ctx)
}

// カテゴリ名は商品詳細・一覧の表示に混ざるので、変更時は商品一覧キャッシュも無効化する
func (u *CategoryUsecase) invalidateProductList(ctx context.Context) error {
	if err := u.cache.Del(ctx, productListCacheKey); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	return nil
}
