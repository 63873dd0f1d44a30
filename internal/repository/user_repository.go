package repository

import (
	"catalog/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	//メールからユーザーを一件取得する。見つからなければnil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ユーザー情報の更新=>パスワード変更・最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
}
