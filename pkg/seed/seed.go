package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v4"

	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/profile"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the startup data set: profiles, demo accounts, feed posts and trait tables.
type Catalog struct {
	Compatibility compatibility.Tables `yaml:"compatibility"`
	Profiles      []profile.Profile    `yaml:"profiles"`
	Accounts      []Account            `yaml:"accounts"`
	Posts         []Post               `yaml:"posts"`
}

type Account struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	ProfileID string `yaml:"profileId"`
}

// Post is a feed entry whose author fields are filled from the profile and whose
// timestamp is AgeMinutes before load time.
type Post struct {
	ID         string       `yaml:"id"`
	UserID     string       `yaml:"userId"`
	Content    string       `yaml:"content"`
	Media      []feed.Media `yaml:"media"`
	Likes      int          `yaml:"likes"`
	Comments   int          `yaml:"comments"`
	AgeMinutes int          `yaml:"ageMinutes"`
}

// Load reads a catalog from path, or the embedded demo catalog when path is empty.
func Load(path string) (Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	ids := make(map[string]struct{}, len(c.Profiles))
	for _, p := range c.Profiles {
		if _, dup := ids[p.ID]; dup {
			return Catalog{}, fmt.Errorf("seed catalog: duplicate profile id %q", p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	for _, p := range c.Posts {
		if _, ok := ids[p.UserID]; !ok {
			return Catalog{}, fmt.Errorf("seed catalog: post %s references unknown profile %q", p.ID, p.UserID)
		}
	}
	return c, nil
}

// Targets are the stores a catalog is written into.
type Targets struct {
	Profiles profile.UseCase
	Accounts auth.AuthUseCase
	Posts    feed.Repository
}

// Apply writes the catalog, skipping records that already exist, so it is safe to run on
// every start against a persistent database.
func Apply(ctx context.Context, c Catalog, t Targets, log *zap.Logger) error {
	now := time.Now().UTC()
	created := 0
	for _, p := range c.Profiles {
		if _, err := t.Profiles.Get(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, profile.ErrNotFound) {
			return err
		}
		if _, err := t.Profiles.Create(ctx, p); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.ID, err)
		}
		created++
	}
	for _, a := range c.Accounts {
		if err := t.Accounts.EnsureAccount(ctx, a.Email, a.Password, a.ProfileID); err != nil {
			return fmt.Errorf("seed account %s: %w", a.Email, err)
		}
	}
	posts := 0
	for _, sp := range c.Posts {
		id, err := uuid.Parse(sp.ID)
		if err != nil {
			return fmt.Errorf("seed post id %q: %w", sp.ID, err)
		}
		if _, err := t.Posts.GetByID(ctx, id); err == nil {
			continue
		} else if !errors.Is(err, feed.ErrNotFound) {
			return err
		}
		author, err := t.Profiles.Get(ctx, sp.UserID)
		if err != nil {
			return fmt.Errorf("seed post author %s: %w", sp.UserID, err)
		}
		err = t.Posts.Create(ctx, feed.Post{
			ID:        id,
			UserID:    author.ID,
			UserName:  author.Name,
			UserPhoto: author.Photo,
			Content:   sp.Content,
			Media:     sp.Media,
			Likes:     sp.Likes,
			Comments:  sp.Comments,
			CreatedAt: now.Add(-time.Duration(sp.AgeMinutes) * time.Minute),
		})
		if err != nil {
			return fmt.Errorf("seed post %s: %w", sp.ID, err)
		}
		posts++
	}
	log.Info("seed catalog applied",
		zap.Int("profiles_created", created),
		zap.Int("accounts", len(c.Accounts)),
		zap.Int("posts_created", posts),
	)
	return nil
}
