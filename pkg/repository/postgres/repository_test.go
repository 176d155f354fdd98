package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/profile"
	pgstorage "github.com/artem13815/win/pkg/storage/postgres"
)

// testPool connects to WIN_TEST_DATABASE_URL, migrates it and empties the tables.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("WIN_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("WIN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgstorage.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pgstorage.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE post_comments, posts, accounts, profiles`)
	require.NoError(t, err)
	return pool
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(testPool(t))

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, profile.Profile{ID: id, Name: "n" + id, Age: 30, Interests: []string{"Книги"}}))
	}
	assert.ErrorIs(t, repo.Create(ctx, profile.Profile{ID: "a", Name: "dup", Age: 30}), ErrDuplicateID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})

	p := list[1]
	p.Bio = "обновлено"
	p.Interests = nil
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "обновлено", got.Bio)
	assert.Equal(t, []string{}, got.Interests)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, profile.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, profile.Profile{ID: "missing"}), profile.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, profile.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "a"), profile.ErrNotFound)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	require.NoError(t, NewProfileRepository(pool).Create(ctx, profile.Profile{ID: "user", Name: "Алексей", Age: 28}))
	repo := NewAccountRepository(pool)

	acc := auth.Account{ID: uuid.New(), Email: "A@win.local", PasswordHash: "hash", ProfileID: "user", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, acc))
	assert.ErrorIs(t, repo.Create(ctx, acc), auth.ErrUserAlreadyExists)

	got, err := repo.GetByEmail(ctx, "a@WIN.local")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "user", got.ProfileID)

	_, err = repo.GetByEmail(ctx, "nobody@win.local")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(testPool(t))
	now := time.Now().UTC().Truncate(time.Millisecond)

	older := feed.Post{ID: uuid.New(), UserID: "1", UserName: "Анна", Content: "old", CreatedAt: now.Add(-time.Hour)}
	newer := feed.Post{
		ID: uuid.New(), UserID: "2", UserName: "Мария", Content: "new", CreatedAt: now,
		Media: []feed.Media{{Type: feed.MediaImage, URL: "/media/posts/x.png"}},
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Content)
	assert.Equal(t, newer.Media, list[0].Media)
	assert.Nil(t, list[1].Media)

	liked, err := repo.IncrementLikes(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	p, err := repo.AddComment(ctx, feed.Comment{ID: uuid.New(), PostID: older.ID, UserID: "2", UserName: "Мария", Text: "hi", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Comments)

	cs, err := repo.ListComments(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "hi", cs[0].Text)

	_, err = repo.IncrementLikes(ctx, uuid.New())
	assert.ErrorIs(t, err, feed.ErrNotFound)
	_, err = repo.AddComment(ctx, feed.Comment{ID: uuid.New(), PostID: uuid.New(), Text: "x"})
	assert.ErrorIs(t, err, feed.ErrNotFound)
}
