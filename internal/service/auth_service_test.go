package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "souqd/internal/pkg/errors"
	"souqd/internal/pkg/jwt"
	"souqd/internal/repo"
)

func newAuthService(t *testing.T) (*AuthService, *repo.UserRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	users := repo.NewUserRepo(path)
	return NewAuthService(users, []byte("test-secret"), time.Hour), users, path
}

func TestRegisterValidation(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Register(ctx, "", "pw", ""), appErr.ErrInvalid)
	require.ErrorIs(t, s.Register(ctx, "a@x.com", "", ""), appErr.ErrInvalid)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	s, users, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "a@x.com", "pw1", "Ali"))
	require.ErrorIs(t, s.Register(ctx, "a@x.com", "pw2", ""), appErr.ErrConflict)

	// the first registration is untouched
	u, err := users.GetByEmail("a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ali", u.Name)
	require.False(t, u.EmailChanged)
	require.False(t, u.NameChanged)
	require.Len(t, u.Code, 7)
}

func TestLoginRoundTrip(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "a@x.com", "pw1", ""))

	user, token, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEmpty(t, token)

	claims, err := jwt.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)

	_, _, err = s.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
	_, _, err = s.Login(ctx, "nobody@x.com", "pw1")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestLoginLegacyPlaintextUpgrade(t *testing.T) {
	s, users, path := newAuthService(t)
	ctx := context.Background()

	seed := `[{"email":"old@x.com","pass":"plaintext-pw"}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	_, _, err := s.Login(ctx, "old@x.com", "wrong")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)

	_, _, err = s.Login(ctx, "old@x.com", "plaintext-pw")
	require.NoError(t, err)

	// the stored credential is a bcrypt hash now, and still checks out
	u, err := users.GetByEmail("old@x.com")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.Password, "$2"))
	require.Len(t, u.Code, 7, "login backfills the missing code")

	_, _, err = s.Login(ctx, "old@x.com", "plaintext-pw")
	require.NoError(t, err)
}

func TestGoogleLoginCreatesWhenAbsent(t *testing.T) {
	s, users, _ := newAuthService(t)
	ctx := context.Background()

	require.False(t, s.Exists("g@x.com"))
	token, err := s.GoogleLogin(ctx, "g@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, s.Exists("g@x.com"))

	u, err := users.GetByEmail("g@x.com")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.Password, "$2"), "random password is stored hashed")

	// a second google login reuses the account
	_, err = s.GoogleLogin(ctx, "g@x.com")
	require.NoError(t, err)

	_, err = s.GoogleLogin(ctx, "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
