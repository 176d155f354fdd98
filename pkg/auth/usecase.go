package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/win/pkg/profile"
)

const minPasswordLen = 6

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	// EnsureAccount creates an account for an existing profile unless the email is taken.
	EnsureAccount(ctx context.Context, email, password, profileID string) error
}

// RegisterInput carries credentials and the initial profile of a new user.
type RegisterInput struct {
	Email    string
	Password string
	Profile  profile.Profile
}

type AuthResult struct {
	Account Account
	Profile profile.Profile
	Token   string
}

type authService struct {
	repo     AccountRepository
	profiles profile.UseCase
	tokens   TokenGenerator
	now      func() time.Time
}

func NewAuthService(repo AccountRepository, profiles profile.UseCase, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, profiles: profiles, tokens: tokens, now: time.Now}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLen {
		return AuthResult{}, ErrInvalidCredentials
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}
	p := in.Profile
	p.ID = ""
	p, err = s.profiles.Create(ctx, p)
	if err != nil {
		return AuthResult{}, err
	}
	acc := Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		ProfileID:    p.ID,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		// Roll back the profile so a failed registration leaves nothing behind.
		if derr := s.profiles.Delete(context.WithoutCancel(ctx), p.ID); derr != nil {
			return AuthResult{}, errors.Join(err, fmt.Errorf("remove profile %s: %w", p.ID, derr))
		}
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, acc)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: acc, Profile: p, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	acc, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	p, err := s.profiles.Get(ctx, acc.ProfileID)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, acc)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: acc, Profile: p, Token: token}, nil
}

func (s *authService) EnsureAccount(ctx context.Context, email, password, profileID string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, err := s.profiles.Get(ctx, profileID); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.repo.Create(ctx, Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		ProfileID:    profileID,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, ErrUserAlreadyExists) {
		return nil
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
