package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/artem13815/win/pkg/auth"
)

// AccountRepository is an in-memory auth.AccountRepository keyed by lowercase email.
type AccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]auth.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]auth.Account)}
}

func (r *AccountRepository) Create(ctx context.Context, a auth.Account) error {
	key := strings.ToLower(a.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.byEmail[key] = a
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (auth.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return auth.Account{}, auth.ErrNotFound
	}
	return a, nil
}
