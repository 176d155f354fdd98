package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/profile"
	"github.com/artem13815/win/pkg/repository/memory"
	"github.com/artem13815/win/pkg/seed"
)

type noTokens struct{}

func (noTokens) Generate(context.Context, auth.Account) (string, error) { return "t", nil }

func targets() (seed.Targets, profile.UseCase, feed.Repository) {
	profiles := profile.NewService(memory.NewProfileRepository())
	posts := memory.NewPostRepository()
	return seed.Targets{
		Profiles: profiles,
		Accounts: auth.NewAuthService(memory.NewAccountRepository(), profiles, noTokens{}),
		Posts:    posts,
	}, profiles, posts
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := seed.Load("")
	require.NoError(t, err)

	require.Len(t, c.Profiles, 4)
	assert.Equal(t, "user", c.Profiles[0].ID)
	assert.Equal(t, 85, c.Compatibility.Zodiac["Близнецы"])
	assert.Equal(t, 90, c.Compatibility.Psychotype["ENFP"])
	assert.NotEmpty(t, c.Accounts)
	assert.Len(t, c.Posts, 3)
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, err := seed.Load("")
	require.NoError(t, err)
	tg, profiles, posts := targets()

	require.NoError(t, seed.Apply(ctx, c, tg, zap.NewNop()))
	require.NoError(t, seed.Apply(ctx, c, tg, zap.NewNop()))

	candidates, err := profiles.Candidates(ctx, "user")
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
	assert.Equal(t, "1", candidates[0].ID)

	list, err := posts.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.NotEmpty(t, list[0].UserName)

	acc := c.Accounts[0]
	res, err := tg.Accounts.Login(ctx, acc.Email, acc.Password)
	require.NoError(t, err)
	assert.Equal(t, acc.ProfileID, res.Profile.ID)
}

func TestParseRejectsDuplicateProfiles(t *testing.T) {
	_, err := seed.Parse([]byte(`
profiles:
  - {id: "1", name: A, age: 20}
  - {id: "1", name: B, age: 21}
`))
	assert.ErrorContains(t, err, "duplicate profile id")
}

func TestParseRejectsOrphanPosts(t *testing.T) {
	_, err := seed.Parse([]byte(`
profiles:
  - {id: "1", name: A, age: 20}
posts:
  - {id: 6f1c1a52-0000-4000-8000-000000000001, userId: "9", content: hi}
`))
	assert.ErrorContains(t, err, "unknown profile")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := seed.Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
