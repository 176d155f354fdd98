package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/win/pkg/feed"
)

// PostRepository is an in-memory feed.Repository.
type PostRepository struct {
	mu       sync.RWMutex
	posts    map[uuid.UUID]feed.Post
	comments map[uuid.UUID][]feed.Comment
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:    make(map[uuid.UUID]feed.Post),
		comments: make(map[uuid.UUID][]feed.Comment),
	}
}

func (r *PostRepository) Create(ctx context.Context, p feed.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; ok {
		return ErrDuplicateID
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (feed.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return feed.Post{}, feed.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]feed.Post, error) {
	r.mu.RLock()
	all := make([]feed.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, clonePost(p))
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []feed.Post{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (feed.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return feed.Post{}, feed.ErrNotFound
	}
	p.Likes++
	r.posts[id] = p
	return clonePost(p), nil
}

func (r *PostRepository) AddComment(ctx context.Context, c feed.Comment) (feed.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[c.PostID]
	if !ok {
		return feed.Post{}, feed.ErrNotFound
	}
	p.Comments++
	r.posts[c.PostID] = p
	r.comments[c.PostID] = append(r.comments[c.PostID], c)
	return clonePost(p), nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]feed.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]feed.Comment, len(r.comments[postID]))
	copy(out, r.comments[postID])
	return out, nil
}

func clonePost(p feed.Post) feed.Post {
	if p.Media != nil {
		p.Media = append([]feed.Media(nil), p.Media...)
	}
	return p
}
