package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/win/pkg/feed"
)

// PostRepository stores feed posts and comments.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, user_id, user_name, user_photo, content, media, likes, comments, created_at`

func (r *PostRepository) Create(ctx context.Context, p feed.Post) error {
	mediaJSON, err := json.Marshal(nonNilMedia(p.Media))
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO posts (`+postColumns+`)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9)
`, p.ID, p.UserID, p.UserName, p.UserPhoto, p.Content, string(mediaJSON), p.Likes, p.Comments, p.CreatedAt)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (feed.Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPostOrNotFound(row)
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]feed.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+postColumns+` FROM posts
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []feed.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (feed.Post, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE posts SET likes = likes + 1 WHERE id = $1
RETURNING `+postColumns, id)
	return scanPostOrNotFound(row)
}

func (r *PostRepository) AddComment(ctx context.Context, c feed.Comment) (feed.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return feed.Post{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
UPDATE posts SET comments = comments + 1 WHERE id = $1
RETURNING `+postColumns, c.PostID)
	p, err := scanPostOrNotFound(row)
	if err != nil {
		return feed.Post{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO post_comments (id, post_id, user_id, user_name, text, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, c.ID, c.PostID, c.UserID, c.UserName, c.Text, c.CreatedAt)
	if err != nil {
		return feed.Post{}, err
	}
	return p, tx.Commit(ctx)
}

func (r *PostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]feed.Comment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, post_id, user_id, user_name, text, created_at
FROM post_comments WHERE post_id = $1
ORDER BY created_at, id
`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []feed.Comment{}
	for rows.Next() {
		var c feed.Comment
		var created time.Time
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.Text, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = created.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanPostOrNotFound(row pgx.Row) (feed.Post, error) {
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return feed.Post{}, feed.ErrNotFound
		}
		return feed.Post{}, err
	}
	return p, nil
}

func scanPost(row pgx.Row) (feed.Post, error) {
	var p feed.Post
	var mediaJSON []byte
	var created time.Time
	if err := row.Scan(&p.ID, &p.UserID, &p.UserName, &p.UserPhoto, &p.Content, &mediaJSON, &p.Likes, &p.Comments, &created); err != nil {
		return feed.Post{}, err
	}
	p.CreatedAt = created.UTC()
	if len(mediaJSON) > 0 {
		if err := json.Unmarshal(mediaJSON, &p.Media); err != nil {
			return feed.Post{}, fmt.Errorf("decode media: %w", err)
		}
	}
	if len(p.Media) == 0 {
		p.Media = nil
	}
	return p, nil
}

func nonNilMedia(m []feed.Media) []feed.Media {
	if m == nil {
		return []feed.Media{}
	}
	return m
}
