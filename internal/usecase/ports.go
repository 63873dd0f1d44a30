package usecase

import (
	"context"
	"io"
	"time"
)

// TTL付きキー・バリューキャッシュの約束。
// 実装はinternal/infra/cache（Redis）。
type Cache interface {
	// キーがなければ(nil, nil)を返す
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// 商品画像の保存先の約束。実装はinternal/infra/storage（S3互換）。
type ImageStorage interface {
	// 保存して公開URLを返す
	Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, urlOrPath string) error
}

// リセットコードのメール送信の約束。実装はinternal/infra/mail。
type Mailer interface {
	SendResetCode(to string, code string) error
}

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 6桁のリセットコードを作る約束
type ResetCodeGenerator interface {
	NewCode() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
