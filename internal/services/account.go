package services

import (
	"context"
	"errors"
	"strings"

	"github.com/empgraph/apiserver/internal/store"
	"github.com/empgraph/apiserver/internal/validate"
	"github.com/empgraph/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// AccountService encapsulates signup and login use-cases.
type AccountService struct {
	repo UserRepository
}

func NewAccountService(repo UserRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Signup validates the input, rejects colliding usernames and emails, and
// persists the account with a bcrypt password hash. The username collision
// is checked before the email collision.
func (s *AccountService) Signup(ctx context.Context, in types.SignupInput) (types.User, error) {
	err := validate.Fields(
		func() error { return validate.NonEmpty(in.Username, "username") },
		func() error { return validate.Email(in.Email) },
		func() error { return validate.NonEmpty(in.Password, "password") },
	)
	if err != nil {
		return types.User{}, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return types.User{}, &ConflictError{Message: "Username already exists."}
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, &ConflictError{Message: "Email already exists."}
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		// Concurrent duplicate writes slip past the pre-check and fail
		// on the unique index instead.
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, &ConflictError{Message: "Username or email already exists."}
		}
		return types.User{}, err
	}
	return user, nil
}

// Login performs a one-shot credential check. Username takes precedence
// over email as the lookup key. An unknown account and a wrong password
// both yield ErrInvalidCredentials. No session or token is issued.
func (s *AccountService) Login(ctx context.Context, in types.LoginInput) (types.User, error) {
	if err := validate.NonEmpty(in.Password, "password"); err != nil {
		return types.User{}, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" && email == "" {
		return types.User{}, &validate.Error{Message: "Provide username or email for login."}
	}

	var user types.User
	var err error
	if username != "" {
		user, err = s.repo.GetByUsername(ctx, username)
	} else {
		if err := validate.Email(email); err != nil {
			return types.User{}, err
		}
		user, err = s.repo.GetByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}
