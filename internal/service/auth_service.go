package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
	"souqd/internal/pkg/jwt"
	"souqd/internal/pkg/password"
	"souqd/internal/repo"
)

var errAccountExists = fmt.Errorf("account exists: %w", appErr.ErrConflict)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a new account with a hashed password, unset one-time-change
// flags and an immediately assigned unique code. Existing accounts are never
// overwritten.
func (s *AuthService) Register(ctx context.Context, email, plainPassword, name string) error {
	if email == "" || plainPassword == "" {
		return fmt.Errorf("email and pass are required: %w", appErr.ErrInvalid)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	if err := s.users.Create(user); err != nil {
		if appErr.IsConflict(err) {
			return errAccountExists
		}
		return err
	}
	logutil.GetLogger(ctx).Info("account registered", zap.String("email", email))
	return nil
}

// Login checks the password and returns the user plus a bearer token. Legacy
// records may store the password unhashed; those compare by equality and get
// re-hashed on success so the plaintext never survives another login.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	if email == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if code, err := s.users.EnsureCode(email); err == nil {
		user.Code = code
	}
	valid := false
	legacy := false
	if password.IsHashed(user.Password) {
		valid = password.Compare(user.Password, plainPassword) == nil
	} else {
		valid = subtle.ConstantTimeCompare([]byte(user.Password), []byte(plainPassword)) == 1
		legacy = valid
	}
	if !valid {
		logutil.GetLogger(ctx).Warn("login rejected", zap.String("email", email))
		return nil, "", appErr.ErrUnauthorized
	}
	if legacy {
		s.upgradePassword(ctx, email, plainPassword)
	}
	token, err := jwt.GenerateToken(user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GoogleLogin trusts the client-verified identity: the account is created with
// a random password when absent, then treated as logged in.
func (s *AuthService) GoogleLogin(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", appErr.ErrInvalid
	}
	if !s.users.Exists(email) {
		hash, err := password.Hash(newID())
		if err != nil {
			return "", err
		}
		err = s.users.Create(&model.User{Email: email, Password: hash})
		if err != nil && !appErr.IsConflict(err) {
			return "", err
		}
		logutil.GetLogger(ctx).Info("account created via google login", zap.String("email", email))
	}
	return jwt.GenerateToken(email, s.jwtSecret, s.jwtTTL)
}

func (s *AuthService) Exists(email string) bool {
	if email == "" {
		return false
	}
	return s.users.Exists(email)
}

func (s *AuthService) upgradePassword(ctx context.Context, email, plainPassword string) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return
	}
	err = s.users.Update(email, func(u *model.User, _ []*model.User) error {
		u.Password = hash
		return nil
	})
	if err != nil {
		logutil.GetLogger(ctx).Warn("legacy password upgrade failed", zap.String("email", email), zap.Error(err))
		return
	}
	logutil.GetLogger(ctx).Warn("legacy plaintext password re-hashed", zap.String("email", email))
}
