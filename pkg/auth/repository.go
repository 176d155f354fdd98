package auth

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountRepository abstracts persistence concerns from the domain layer.
type AccountRepository interface {
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}
