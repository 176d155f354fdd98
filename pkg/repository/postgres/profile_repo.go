package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/win/pkg/profile"
)

var ErrDuplicateID = errors.New("duplicate id")

// ProfileRepository stores the catalog; seq keeps insertion order.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, name, age, photo, bio, interests, zodiac_sign, psychotype, location`

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO profiles (`+profileColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, p.ID, p.Name, p.Age, p.Photo, p.Bio, nonNil(p.Interests), p.ZodiacSign, p.Psychotype, p.Location)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET name = $2, age = $3, photo = $4, bio = $5, interests = $6, zodiac_sign = $7, psychotype = $8, location = $9
WHERE id = $1
`, p.ID, p.Name, p.Age, p.Photo, p.Bio, nonNil(p.Interests), p.ZodiacSign, p.Psychotype, p.Location)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Photo, &p.Bio, &p.Interests, &p.ZodiacSign, &p.Psychotype, &p.Location)
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
