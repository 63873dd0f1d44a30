package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
	"catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBookUsecase_List_CacheHit(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BookRepoMock)
	cache := new(CacheMock)
	uc := usecase.NewBookUsecase(bRepo, cache)

	cached := []byte(`[{"id":1}]`)
	cache.On("Get", mock.Anything, "book_list").Return(cached, nil)

	body, err := uc.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, cached, body)

	bRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestBookUsecase_List_CacheMiss_PopulatesWithTTL(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BookRepoMock)
	cache := new(CacheMock)
	uc := usecase.NewBookUsecase(bRepo, cache)

	cache.On("Get", mock.Anything, "book_list").Return(nil, nil)
	bRepo.On("List", mock.Anything).Return([]model.Book{{ID: 1, Title: "Go"}}, nil)
	cache.On("Set", mock.Anything, "book_list", mock.Anything, 60*time.Second).Return(nil)

	body, err := uc.List(ctx)
	assert.NoError(t, err)

	var out []model.Book
	assert.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 1, len(out))

	cache.AssertExpectations(t)
}

func TestBookUsecase_Create_Validation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBookUsecase(new(BookRepoMock), new(CacheMock))

	_, err := uc.Create(ctx, usecase.BookInput{Title: "", Price: 100})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		assert.Contains(t, he.Fields, "title")
	}

	_, err = uc.Create(ctx, usecase.BookInput{Title: "Go", Price: 0})
	he = assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		assert.Contains(t, he.Fields, "price")
	}
}

func TestBookUsecase_Create_InvalidatesCache(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BookRepoMock)
	cache := new(CacheMock)
	uc := usecase.NewBookUsecase(bRepo, cache)

	bRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Del", mock.Anything, "book_list").Return(nil)

	_, err := uc.Create(ctx, usecase.BookInput{Title: "Go", Author: "Alan", Price: 3000})
	assert.NoError(t, err)

	cache.AssertExpectations(t)
}

func TestBookUsecase_Update_NotFound(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BookRepoMock)
	uc := usecase.NewBookUsecase(bRepo, new(CacheMock))

	bRepo.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	_, err := uc.Update(ctx, 99, usecase.BookInput{Title: "Go", Price: 3000})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestBookUsecase_Delete_InvalidatesCache(t *testing.T) {
	ctx := context.Background()

	bRepo := new(BookRepoMock)
	cache := new(CacheMock)
	uc := usecase.NewBookUsecase(bRepo, cache)

	bRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
	cache.On("Del", mock.Anything, "book_list").Return(nil)

	assert.NoError(t, uc.Delete(ctx, 1))
	cache.AssertExpectations(t)
}
