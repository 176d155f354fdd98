package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/win/pkg/media"
	"github.com/artem13815/win/pkg/profile"
)

const maxMediaPerPost = 10

// UseCase covers the blog feed.
type UseCase interface {
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Create(ctx context.Context, author profile.Profile, content string, items []Media) (Post, error)
	Like(ctx context.Context, id uuid.UUID) (Post, error)
	Comment(ctx context.Context, id uuid.UUID, author profile.Profile, text string) (Comment, error)
	Comments(ctx context.Context, id uuid.UUID) ([]Comment, error)
}

type service struct {
	repo  Repository
	store media.Store
	now   func() time.Time
}

// NewService builds the feed use case. store receives media sent inline as data: URLs.
func NewService(repo Repository, store media.Store) UseCase {
	return &service{repo: repo, store: store, now: time.Now}
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Post, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Create(ctx context.Context, author profile.Profile, content string, items []Media) (Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(items) == 0 {
		return Post{}, ErrEmptyPost
	}
	if len(items) > maxMediaPerPost {
		return Post{}, fmt.Errorf("%w: at most %d attachments", ErrInvalidMedia, maxMediaPerPost)
	}
	stored := make([]Media, 0, len(items))
	for _, m := range items {
		sm, err := s.storeMedia(ctx, m)
		if err != nil {
			return Post{}, err
		}
		stored = append(stored, sm)
	}
	p := Post{
		ID:        uuid.New(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserPhoto: author.Photo,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if len(stored) > 0 {
		p.Media = stored
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *service) Like(ctx context.Context, id uuid.UUID) (Post, error) {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *service) Comment(ctx context.Context, id uuid.UUID, author profile.Profile, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyComment
	}
	c := Comment{
		ID:        uuid.New(),
		PostID:    id,
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.repo.AddComment(ctx, c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *service) Comments(ctx context.Context, id uuid.UUID) ([]Comment, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, id)
}

// storeMedia moves inline data: URLs into the media store; plain URLs pass through.
func (s *service) storeMedia(ctx context.Context, m Media) (Media, error) {
	raw := strings.TrimSpace(m.URL)
	if raw == "" {
		return Media{}, fmt.Errorf("%w: empty url", ErrInvalidMedia)
	}
	if !media.IsDataURL(raw) {
		if !s.linkAllowed(raw) {
			return Media{}, fmt.Errorf("%w: unsupported url %q", ErrInvalidMedia, raw)
		}
		if m.Type != MediaImage && m.Type != MediaVideo {
			m.Type = MediaImage
		}
		m.URL = raw
		return m, nil
	}
	if s.store == nil {
		return Media{}, fmt.Errorf("%w: inline uploads are disabled", ErrInvalidMedia)
	}
	data, mimeType, err := media.Decode(raw)
	if err != nil {
		return Media{}, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	link, err := s.store.Save(ctx, "posts", data, mimeType)
	if err != nil {
		return Media{}, fmt.Errorf("store media: %w", err)
	}
	return Media{Type: MediaTypeFor(mimeType), URL: link}, nil
}

// linkAllowed accepts absolute http(s) links and paths served from the media store.
func (s *service) linkAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "":
		based, ok := s.store.(interface{ BaseURL() string })
		if !ok || u.Host != "" {
			return false
		}
		base := based.BaseURL()
		return strings.HasPrefix(base, "/") && strings.HasPrefix(u.Path, base+"/") && !strings.Contains(u.Path, "..")
	}
	return false
}
