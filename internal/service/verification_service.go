package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
	"souqd/internal/pkg/password"
	"souqd/internal/repo"
	"souqd/internal/store"
)

// VerificationService runs the email-code flow: the client dispatches the
// code over its own email channel, the server only records and checks it.
type VerificationService struct {
	users  *repo.UserRepo
	codes  *store.CodeStore
	tokens *store.TokenStore
}

func NewVerificationService(users *repo.UserRepo, codes *store.CodeStore, tokens *store.TokenStore) *VerificationService {
	return &VerificationService{users: users, codes: codes, tokens: tokens}
}

// RequestCode records a pending 6-digit code for the email, replacing any
// prior one.
func (s *VerificationService) RequestCode(ctx context.Context, email, code string) error {
	if email == "" || !isSixDigits(code) {
		return appErr.ErrInvalid
	}
	s.codes.Put(email, code)
	return nil
}

// VerifyCode consumes a matching unexpired code and issues a single-use
// password-reset token.
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	if email == "" || code == "" {
		return "", appErr.ErrInvalid
	}
	if !s.codes.Consume(email, code) {
		return "", appErr.ErrInvalid
	}
	token := s.tokens.Issue(email)
	logutil.GetLogger(ctx).Info("email verified", zap.String("email", email))
	return token, nil
}

// ResetPassword overwrites the password with a fresh hash. The token is
// consumed only after a successful write.
func (s *VerificationService) ResetPassword(ctx context.Context, email, newPassword, token string) error {
	if email == "" || newPassword == "" || token == "" {
		return appErr.ErrInvalid
	}
	if !s.tokens.Validate(email, token) {
		return appErr.ErrInvalid
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	err = s.users.Update(email, func(u *model.User, _ []*model.User) error {
		u.Password = hash
		return nil
	})
	if err != nil {
		return err
	}
	s.tokens.Delete(email)
	logutil.GetLogger(ctx).Info("password reset", zap.String("email", email))
	return nil
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
