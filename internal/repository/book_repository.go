package repository

import (
	"catalog/internal/domain/model"
	"context"
)

type BookRepository interface {
	List(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}
