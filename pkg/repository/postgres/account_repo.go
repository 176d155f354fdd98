package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/win/pkg/auth"
)

// AccountRepository implements auth.AccountRepository backed by PostgreSQL (pgx).
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a auth.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, profile_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, strings.ToLower(a.Email), a.PasswordHash, a.ProfileID, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, profile_id, created_at
		FROM accounts WHERE email = $1
	`, strings.ToLower(email))
	var a auth.Account
	var createdAt time.Time
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.ProfileID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Account{}, auth.ErrNotFound
		}
		return auth.Account{}, err
	}
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
