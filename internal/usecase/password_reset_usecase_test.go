package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"catalog/internal/domain/model"
	repo "catalog/internal/repository"
	"catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var resetNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newResetUC(userRepo *UserRepoMock, resetRepo *ResetRepoMock, mailer *MailerMock) *usecase.PasswordResetUsecase {
	return usecase.NewPasswordResetUsecase(
		userRepo, resetRepo, &plainHasher{}, mailer,
		&fixedCodeGen{code: "123456"}, &fixedClock{now: resetNow},
	)
}

// =====================
// コード発行
// =====================

func TestPasswordReset_Request_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	mailer := new(MailerMock)
	uc := newResetUC(userRepo, resetRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com", IsActive: true}, nil)
	resetRepo.On("DeleteByEmail", mock.Anything, "user@example.com").Return(nil)
	resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.PasswordResetCode) bool {
		return rec.Email == "user@example.com" && rec.Code == "123456" && rec.CreatedAt.Equal(resetNow)
	})).Return(nil)
	mailer.On("SendResetCode", "user@example.com", "123456").Return(nil)

	err := uc.RequestReset(ctx, usecase.RequestResetInput{Email: "user@example.com"})
	assert.NoError(t, err)

	resetRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestPasswordReset_Request_UnknownEmail_NoCodeIssued(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	mailer := new(MailerMock)
	uc := newResetUC(userRepo, resetRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	err := uc.RequestReset(ctx, usecase.RequestResetInput{Email: "nobody@example.com"})
	assertHTTPStatus(t, err, http.StatusNotFound)

	// コード行は作らず、メールも送らない
	resetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendResetCode", mock.Anything, mock.Anything)
}

func TestPasswordReset_Request_InvalidEmail(t *testing.T) {
	ctx := context.Background()
	uc := newResetUC(new(UserRepoMock), new(ResetRepoMock), new(MailerMock))

	err := uc.RequestReset(ctx, usecase.RequestResetInput{Email: "not-an-email"})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		assert.Contains(t, he.Fields, "email")
	}
}

func TestPasswordReset_Request_MailFailure(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	mailer := new(MailerMock)
	uc := newResetUC(userRepo, resetRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com"}, nil)
	resetRepo.On("DeleteByEmail", mock.Anything, "user@example.com").Return(nil)
	resetRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendResetCode", "user@example.com", "123456").Return(assert.AnError)

	err := uc.RequestReset(ctx, usecase.RequestResetInput{Email: "user@example.com"})
	he := assertHTTPStatus(t, err, http.StatusInternalServerError)
	if he != nil {
		assert.Equal(t, "failed to send email", he.Message)
	}
}

// =====================
// コード照合とパスワード更新
// =====================

func TestPasswordReset_Complete_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	uc := newResetUC(userRepo, resetRepo, new(MailerMock))

	rec := model.PasswordResetCode{ID: 1, Email: "user@example.com", Code: "123456", CreatedAt: resetNow.Add(-5 * time.Minute)}
	resetRepo.On("Find", mock.Anything, "user@example.com", "123456").Return(rec, nil)
	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com", PasswordHash: "hashed:old"}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash == "hashed:new-password"
	})).Return(nil)
	// 使い終わったコードは消える
	resetRepo.On("DeleteByEmail", mock.Anything, "user@example.com").Return(nil)

	err := uc.CompleteReset(ctx, usecase.CompleteResetInput{
		Email: "user@example.com", Code: "123456", NewPassword: "new-password",
	})
	assert.NoError(t, err)

	userRepo.AssertExpectations(t)
	resetRepo.AssertExpectations(t)
}

func TestPasswordReset_Complete_WrongCode_NoCredentialChange(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	uc := newResetUC(userRepo, resetRepo, new(MailerMock))

	resetRepo.On("Find", mock.Anything, "user@example.com", "999999").
		Return(model.PasswordResetCode{}, repo.ErrNotFound)

	err := uc.CompleteReset(ctx, usecase.CompleteResetInput{
		Email: "user@example.com", Code: "999999", NewPassword: "new-password",
	})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		assert.Contains(t, he.Fields, "code")
	}

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPasswordReset_Complete_ExpiredCode(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	resetRepo := new(ResetRepoMock)
	uc := newResetUC(userRepo, resetRepo, new(MailerMock))

	rec := model.PasswordResetCode{ID: 1, Email: "user@example.com", Code: "123456", CreatedAt: resetNow.Add(-16 * time.Minute)}
	resetRepo.On("Find", mock.Anything, "user@example.com", "123456").Return(rec, nil)

	err := uc.CompleteReset(ctx, usecase.CompleteResetInput{
		Email: "user@example.com", Code: "123456", NewPassword: "new-password",
	})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		assert.Equal(t, "code expired", he.Fields["code"])
	}

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	resetRepo.AssertNotCalled(t, "DeleteByEmail", mock.Anything, mock.Anything)
}

func TestPasswordReset_Complete_FieldValidation(t *testing.T) {
	ctx := context.Background()
	uc := newResetUC(new(UserRepoMock), new(ResetRepoMock), new(MailerMock))

	err := uc.CompleteReset(ctx, usecase.CompleteResetInput{
		Email: "bad", Code: "12", NewPassword: "short",
	})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	if he != nil {
		// 全フィールドのエラーをまとめて返す
		assert.Contains(t, he.Fields, "email")
		assert.Contains(t, he.Fields, "code")
		assert.Contains(t, he.Fields, "new_password")
	}
}
