package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkboard/linkboard/internal/store"
)

// bcryptCost is fixed; raising it invalidates nothing but slows new hashes.
const bcryptCost = 10

var (
	// ErrUserNotFound is returned by Login when no user has the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned by Login on a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialManager handles signup and login, producing identity tokens on
// success. Password hashes never leave this component or the store beneath it.
type CredentialManager struct {
	users *store.UserStore
	codec *TokenCodec
}

func NewCredentialManager(users *store.UserStore, codec *TokenCodec) *CredentialManager {
	return &CredentialManager{users: users, codec: codec}
}

// Signup hashes the password with a per-call random salt, persists a new
// user, and signs a token for the new identity. A taken email surfaces as
// store.ErrDuplicateEmail from the database's uniqueness constraint.
func (m *CredentialManager) Signup(ctx context.Context, email, password, name string) (string, *store.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := m.users.Create(ctx, email, name, string(hash))
	if err != nil {
		return "", nil, err
	}

	token, err := m.codec.Sign(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Login verifies the password against the stored hash (bcrypt's comparison
// is constant-time) and signs a token on success.
func (m *CredentialManager) Login(ctx context.Context, email, password string) (string, *store.User, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := m.codec.Sign(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}
