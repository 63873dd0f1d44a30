package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
)

// コードの有効期限。期限切れは不正なコードと同じ扱い。
const resetCodeTTL = 15 * time.Minute

type PasswordResetUsecase struct {
	userRepo  repo.UserRepository
	resetRepo repo.PasswordResetRepository
	hasher    PasswordHasher
	mailer    Mailer
	codeGen   ResetCodeGenerator
	clock     Clock
}

// DI
func NewPasswordResetUsecase(
	userRepo repo.UserRepository,
	resetRepo repo.PasswordResetRepository,
	hasher PasswordHasher,
	mailer Mailer,
	codeGen ResetCodeGenerator,
	clock Clock,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		hasher:    hasher,
		mailer:    mailer,
		codeGen:   codeGen,
		clock:     clock,
	}
}

type RequestResetInput struct {
	Email string
}

// RequestResetは古いコードを消してから6桁コードを発行し、メールで送る。
// アカウントがなければ404。コード行は作らない。
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, in RequestResetInput) error {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError(map[string]string{"email": "is invalid"})
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return NewHTTPError(http.StatusNotFound, "account not found")
	}

	// 同じメール宛のコードは常に1件だけ有効
	if err := u.resetRepo.DeleteByEmail(ctx, email); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	code := u.codeGen.NewCode()
	rec := model.PasswordResetCode{
		Email:     email,
		Code:      code,
		CreatedAt: u.clock.Now(),
	}
	if err := u.resetRepo.Create(ctx, &rec); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 送信失敗は握りつぶさない
	if err := u.mailer.SendResetCode(email, code); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to send email")
	}

	return nil
}

type CompleteResetInput struct {
	Email       string
	Code        string
	NewPassword string
}

// CompleteResetはコードを照合し、新しいパスワードを設定してコードを消す。
// 不正・期限切れのコードでは資格情報を一切変更しない。
func (u *PasswordResetUsecase) CompleteReset(ctx context.Context, in CompleteResetInput) error {
	email := strings.TrimSpace(in.Email)

	fields := map[string]string{}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "is invalid"
	}
	if len(in.Code) != 6 {
		fields["code"] = "must be 6 digits"
	}
	if len(in.NewPassword) < 8 {
		fields["new_password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}

	rec, err := u.resetRepo.Find(ctx, email, in.Code)
	if err == repo.ErrNotFound {
		return NewValidationError(map[string]string{"code": "invalid code or email"})
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.clock.Now().Sub(rec.CreatedAt) > resetCodeTTL {
		return NewValidationError(map[string]string{"code": "code expired"})
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return NewValidationError(map[string]string{"code": "invalid code or email"})
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.PasswordHash = hashed
	user.UpdatedAt = u.clock.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 使い終わったコードは消す
	if err := u.resetRepo.DeleteByEmail(ctx, email); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
