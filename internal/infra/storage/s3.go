package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// S3StorageはS3互換オブジェクトストレージ（MinIO等）への商品画像の保存先。
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type S3Config struct {
	Endpoint  string // minio:9000 など
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // 公開URLのベース（省略時はendpointから組み立て）
}

// NewS3Storageはクライアントを作り、bucketがなければ作成する。
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("S3 bucket created")
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// Uploadはpath（例 "products/uuid/1.jpg"）にストリーミングで保存し、公開URLを返す。
func (s *S3Storage) Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	path = strings.TrimPrefix(path, "/")

	_, err := s.client.PutObject(ctx, s.bucket, path, r, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	log.Debug().Str("path", path).Str("content_type", contentType).Msg("file uploaded")

	return s.publicURL + "/" + path, nil
}

// Deleteは公開URLまたはパスで1オブジェクトを削除する。
func (s *S3Storage) Delete(ctx context.Context, urlOrPath string) error {
	path := strings.TrimPrefix(urlOrPath, s.publicURL+"/")
	path = strings.TrimPrefix(path, "/")

	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
