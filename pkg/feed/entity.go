package feed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaTypeFor classifies a MIME type: image/* is an image, anything else a video.
func MediaTypeFor(mimeType string) MediaType {
	if strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return MediaImage
	}
	return MediaVideo
}

type Media struct {
	Type MediaType `json:"type" yaml:"type"`
	URL  string    `json:"url" yaml:"url"`
}

// Post is a blog feed entry with denormalized author display data.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserPhoto string    `json:"userPhoto"`
	Content   string    `json:"content"`
	Media     []Media   `json:"media,omitempty"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"timestamp"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrNotFound     = errors.New("post not found")
	ErrEmptyPost    = errors.New("post needs text or media")
	ErrEmptyComment = errors.New("comment text is required")
	ErrInvalidMedia = errors.New("invalid media")
)

// Repository stores posts and their comments. List is newest first; ListComments oldest first.
type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (Post, error)
	AddComment(ctx context.Context, c Comment) (Post, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error)
}
