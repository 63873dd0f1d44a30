package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"

	"github.com/rs/zerolog/log"
)

// 本の一覧キャッシュは商品より短い60秒
const (
	bookListCacheKey = "book_list"
	bookListCacheTTL = 60 * time.Second
)

type BookUsecase struct {
	bookRepo repo.BookRepository
	cache    Cache
}

// DI
func NewBookUsecase(bookRepo repo.BookRepository, cache Cache) *BookUsecase {
	return &BookUsecase{
		bookRepo: bookRepo,
		cache:    cache,
	}
}

type BookInput struct {
	Title      string
	Author     string
	Price      int64
	CategoryID *int64
}

// Listはシリアライズ済みJSONを返す（商品一覧と同じキャッシュ契約、TTL 60秒）。
func (u *BookUsecase) List(ctx context.Context) ([]byte, error) {
	cached, err := u.cache.Get(ctx, bookListCacheKey)
	if err != nil {
		log.Warn().Err(err).Str("key", bookListCacheKey).Msg("cache get failed")
	}
	if cached != nil {
		return cached, nil
	}

	books, err := u.bookRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	body, err := json.Marshal(books)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.cache.Set(ctx, bookListCacheKey, body, bookListCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", bookListCacheKey).Msg("cache set failed")
	}

	return body, nil
}

func (u *BookUsecase) Get(ctx context.Context, id int64) (model.Book, error) {
	b, err := u.bookRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "book not found")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BookUsecase) Create(ctx context.Context, in BookInput) (model.Book, error) {
	if err := validateBook(in); err != nil {
		return model.Book{}, err
	}

	b := model.Book{
		Title:      strings.TrimSpace(in.Title),
		Author:     strings.TrimSpace(in.Author),
		Price:      in.Price,
		CategoryID: in.CategoryID,
	}
	if err := u.bookRepo.Create(ctx, &b); err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidate(ctx); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (u *BookUsecase) Update(ctx context.Context, id int64, in BookInput) (model.Book, error) {
	if err := validateBook(in); err != nil {
		return model.Book{}, err
	}

	b := model.Book{
		ID:         id,
		Title:      strings.TrimSpace(in.Title),
		Author:     strings.TrimSpace(in.Author),
		Price:      in.Price,
		CategoryID: in.CategoryID,
	}
	if err := u.bookRepo.Update(ctx, &b); err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "book not found")
	} else if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.invalidate(ctx); err != nil {
		return model.Book{}, err
	}
	return u.Get(ctx, id)
}

func (u *BookUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.bookRepo.Delete(ctx, id); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "book not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.invalidate(ctx)
}

func validateBook(in BookInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "is required"
	}
	if in.Price <= 0 {
		fields["price"] = "must be greater than 0"
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func (u *BookUsecase) invalidate(ctx context.Context) error {
	if err := u.cache.Del(ctx, bookListCacheKey); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	return nil
}
