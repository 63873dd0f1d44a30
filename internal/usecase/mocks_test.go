package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
	"catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByUUID(ctx context.Context, uuid string) (model.Product, error) {
	args := m.Called(ctx, uuid)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ModelRepoMock struct{ mock.Mock }

func (m *ModelRepoMock) List(ctx context.Context) ([]model.ProductModel, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.ProductModel)
	return items, args.Error(1)
}

func (m *ModelRepoMock) FindByID(ctx context.Context, id int64) (model.ProductModel, error) {
	args := m.Called(ctx, id)
	pm, _ := args.Get(0).(model.ProductModel)
	return pm, args.Error(1)
}

func (m *ModelRepoMock) Create(ctx context.Context, pm *model.ProductModel) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *ModelRepoMock) Update(ctx context.Context, pm *model.ProductModel) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *ModelRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Book)
	return items, args.Error(1)
}

func (m *BookRepoMock) FindByID(ctx context.Context, id int64) (model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Create(ctx context.Context, b *model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepoMock) Update(ctx context.Context, b *model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type ResetRepoMock struct{ mock.Mock }

func (m *ResetRepoMock) Create(ctx context.Context, code *model.PasswordResetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *ResetRepoMock) Find(ctx context.Context, email string, code string) (model.PasswordResetCode, error) {
	args := m.Called(ctx, email, code)
	rec, _ := args.Get(0).(model.PasswordResetCode)
	return rec, args.Error(1)
}

func (m *ResetRepoMock) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *CacheMock) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type StorageMock struct{ mock.Mock }

func (m *StorageMock) Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, path, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) Delete(ctx context.Context, urlOrPath string) error {
	args := m.Called(ctx, urlOrPath)
	return args.Error(0)
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) SendResetCode(to string, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

// =====================
// 決め打ちで返す小さな部品
// =====================

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

type fixedCodeGen struct{ code string }

func (g *fixedCodeGen) NewCode() string { return g.code }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type plainHasher struct{}

func (h *plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

type plainVerifier struct{}

func (v *plainVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

type stubIssuer struct{ token string }

func (i *stubIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	return i.token, now.Add(15 * time.Minute), nil
}

// =====================
// assertヘルパー
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
	return he
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
