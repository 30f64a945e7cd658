package repo

import (
	"encoding/json"
	"math/rand"
	"os"
	"sync"
	"time"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
)

const (
	codeLength   = 7
	codeLetters  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeAlphabet = codeLetters + "0123456789"
)

// UserRepo stores the full user list as one JSON array in a flat file.
// All operations serialize behind the mutex; the file is rewritten whole on
// every mutation.
type UserRepo struct {
	mu   sync.Mutex
	path string
}

func NewUserRepo(path string) *UserRepo {
	return &UserRepo{path: path}
}

// load never fails: an absent, empty or unparsable file reads as an empty list.
func (r *UserRepo) load() []*model.User {
	data, err := os.ReadFile(r.path)
	if err != nil || len(data) == 0 {
		return nil
	}
	var users []*model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil
	}
	return users
}

func (r *UserRepo) save(users []*model.User) error {
	if users == nil {
		users = []*model.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

func findUser(users []*model.User, email string) *model.User {
	for _, u := range users {
		if u != nil && u.Email == email {
			return u
		}
	}
	return nil
}

// GetByEmail returns a copy of the matching record.
func (r *UserRepo) GetByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := findUser(r.load(), email)
	if u == nil {
		return nil, appErr.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepo) Exists(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return findUser(r.load(), email) != nil
}

// Create appends a new record, assigning a unique code when the record has
// none. Duplicate emails conflict; existing accounts are never overwritten.
func (r *UserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	if findUser(users, user.Email) != nil {
		return appErr.ErrConflict
	}
	copied := *user
	users = append(users, &copied)
	ensureCode(users, &copied)
	if err := r.save(users); err != nil {
		return err
	}
	*user = copied
	return nil
}

// Update runs fn against the matching record inside the lock and persists the
// result. fn also receives the full list for cross-record checks; returning an
// error aborts without writing.
func (r *UserRepo) Update(email string, fn func(u *model.User, all []*model.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	u := findUser(users, email)
	if u == nil {
		return appErr.ErrNotFound
	}
	if err := fn(u, users); err != nil {
		return err
	}
	return r.save(users)
}

// EnsureCode backfills a missing code for one user and persists only when a
// code was assigned. Calling it again is a no-op.
func (r *UserRepo) EnsureCode(email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	u := findUser(users, email)
	if u == nil {
		return "", appErr.ErrNotFound
	}
	if !ensureCode(users, u) {
		return u.Code, nil
	}
	if err := r.save(users); err != nil {
		return "", err
	}
	return u.Code, nil
}

// BackfillCodes assigns codes to every record missing one. Run once at
// startup; a failed load backfills nothing.
func (r *UserRepo) BackfillCodes() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	changed := false
	for _, u := range users {
		if ensureCode(users, u) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(users)
}

func ensureCode(users []*model.User, u *model.User) bool {
	if u == nil || u.Code != "" {
		return false
	}
	existing := make(map[string]struct{}, len(users))
	for _, other := range users {
		if other != nil && other.Code != "" {
			existing[other.Code] = struct{}{}
		}
	}
	u.Code = generateUniqueCode(existing)
	return true
}

// generateUniqueCode builds a 7-character code, first character alphabetic,
// regenerating on collision with any existing code.
func generateUniqueCode(existing map[string]struct{}) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		buf := make([]byte, codeLength)
		buf[0] = codeLetters[rng.Intn(len(codeLetters))]
		for i := 1; i < codeLength; i++ {
			buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, ok := existing[code]; !ok {
			return code
		}
	}
}
