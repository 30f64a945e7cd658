package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
	"souqd/internal/repo"
	"souqd/internal/store"
)

const (
	FieldEmail = "email"
	FieldName  = "name"
)

var (
	errEmailExists      = fmt.Errorf("email exists: %w", appErr.ErrConflict)
	errEmailAlreadySet  = fmt.Errorf("email already changed: %w", appErr.ErrForbidden)
	errNameAlreadySet   = fmt.Errorf("name already changed: %w", appErr.ErrForbidden)
	errInvalidOrExpired = fmt.Errorf("invalid_or_expired: %w", appErr.ErrInvalid)
	errInvalidInput     = fmt.Errorf("invalid input: %w", appErr.ErrInvalid)
)

type Profile struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	EmailChanged bool   `json:"email_changed"`
	NameChanged  bool   `json:"name_changed"`
	Code         string `json:"code"`
}

// ProfileService covers the one-time profile mutations and the verified
// two-step email change.
type ProfileService struct {
	users   *repo.UserRepo
	pending *store.PendingChangeStore
}

func NewProfileService(users *repo.UserRepo, pending *store.PendingChangeStore) *ProfileService {
	return &ProfileService{users: users, pending: pending}
}

// Me returns the profile view for the principal, backfilling a missing code.
// A session pointing at a vanished record still answers with blanks rather
// than failing the whole page.
func (s *ProfileService) Me(ctx context.Context, email string) *Profile {
	profile := &Profile{Email: email}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return profile
	}
	profile.Name = user.Name
	profile.EmailChanged = user.EmailChanged
	profile.NameChanged = user.NameChanged
	profile.Code = user.Code
	if profile.Code == "" {
		if code, err := s.users.EnsureCode(email); err == nil {
			profile.Code = code
		}
	}
	return profile
}

// UpdateProfile changes one of the one-time fields. Each field may be changed
// at most once per account, ever; the guard flag flips on first use and never
// resets. Returns the principal email to carry forward in the session.
func (s *ProfileService) UpdateProfile(ctx context.Context, currentEmail, field, value string) (string, error) {
	if (field != FieldEmail && field != FieldName) || value == "" {
		return "", errInvalidInput
	}
	principal := currentEmail
	err := s.users.Update(currentEmail, func(u *model.User, all []*model.User) error {
		switch field {
		case FieldEmail:
			if u.EmailChanged {
				return errEmailAlreadySet
			}
			if value != currentEmail && findOther(all, u, value) {
				return errEmailExists
			}
			u.Email = value
			u.EmailChanged = true
			principal = value
		case FieldName:
			if u.NameChanged {
				return errNameAlreadySet
			}
			u.Name = value
			u.NameChanged = true
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logutil.GetLogger(ctx).Info("profile field changed",
		zap.String("email", currentEmail), zap.String("field", field))
	return principal, nil
}

// RequestEmailChange stores the pending change; the code has already been
// dispatched to the candidate address by the client.
func (s *ProfileService) RequestEmailChange(ctx context.Context, currentEmail, newEmail, code string) error {
	if newEmail == "" || !isSixDigits(code) {
		return errInvalidInput
	}
	if s.users.Exists(newEmail) {
		return errEmailExists
	}
	s.pending.Put(currentEmail, newEmail, code)
	return nil
}

// ConfirmEmailChange applies a pending change after the code matches. The
// collision check reruns at confirm time: the candidate address may have been
// registered by someone else while the code was in flight.
func (s *ProfileService) ConfirmEmailChange(ctx context.Context, currentEmail, newEmail, code string) (string, error) {
	if newEmail == "" || code == "" {
		return "", appErr.ErrInvalid
	}
	if !s.pending.Validate(currentEmail, newEmail, code) {
		return "", errInvalidOrExpired
	}
	err := s.users.Update(currentEmail, func(u *model.User, all []*model.User) error {
		if findOther(all, u, newEmail) {
			return errEmailExists
		}
		u.Email = newEmail
		u.EmailChanged = true
		return nil
	})
	if err != nil {
		return "", err
	}
	s.pending.Delete(currentEmail)
	logutil.GetLogger(ctx).Info("email changed",
		zap.String("from", currentEmail), zap.String("to", newEmail))
	return newEmail, nil
}

// findOther reports whether some record other than u already holds the email.
func findOther(all []*model.User, u *model.User, email string) bool {
	for _, other := range all {
		if other != nil && other != u && other.Email == email {
			return true
		}
	}
	return false
}
