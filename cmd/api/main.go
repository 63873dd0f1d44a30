package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"catalog/internal/config"
	"catalog/internal/domain/model"
	"catalog/internal/handler"
	"catalog/internal/infra/cache"
	"catalog/internal/infra/db"
	"catalog/internal/infra/mail"
	infraRepo "catalog/internal/infra/repository"
	"catalog/internal/infra/storage"
	mw "catalog/internal/middleware"
	"catalog/internal/server"
	"catalog/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 6桁の数字コード。crypto/randで偏りなく引く。
type resetCodeGenerator struct{}

func (g *resetCodeGenerator) NewCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env not found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if cfg.GoEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.ProductModel{},
		&model.Product{},
		&model.ProductImage{},
		&model.Book{},
		&model.User{},
		&model.PasswordResetCode{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	//Redis接続
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisCache.Close()

	//画像ストレージ
	imageStorage, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	//メール送信
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	modelRepo := infraRepo.NewProductModelGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	resetRepo := infraRepo.NewPasswordResetGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	codeGen := &resetCodeGenerator{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, modelRepo, redisCache, imageStorage, idGen)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, redisCache)
	modelUC := usecase.NewModelUsecase(modelRepo, categoryRepo, redisCache)
	bookUC := usecase.NewBookUsecase(bookRepo, redisCache)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)
	resetUC := usecase.NewPasswordResetUsecase(userRepo, resetRepo, hasher, mailer, codeGen, clock)

	//Handler生成
	authMW := mw.AuthJWT(cfg.JWTSecret)
	handlers := server.Handlers{
		Product:  handler.NewProductHandler(productUC, authMW),
		Category: handler.NewCategoryHandler(categoryUC, authMW),
		Model:    handler.NewModelHandler(modelUC, authMW),
		Book:     handler.NewBookHandler(bookUC, authMW),
		Auth:     handler.NewAuthHandler(authUC, resetUC),
	}

	//Server起動
	e := server.New(handlers)
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
