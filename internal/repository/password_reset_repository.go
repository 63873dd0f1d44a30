package repository

import (
	"catalog/internal/domain/model"
	"context"
)

// リセットコードの保存・照合・削除を約束。
type PasswordResetRepository interface {
	// 新規発行。呼び出し側が先にDeleteByEmailで古い行を消す。
	Create(ctx context.Context, code *model.PasswordResetCode) error
	// email+codeの組で1件取得。なければErrNotFound。
	Find(ctx context.Context, email string, code string) (model.PasswordResetCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}
