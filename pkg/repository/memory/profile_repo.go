package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/artem13815/win/pkg/profile"
)

var ErrDuplicateID = errors.New("duplicate id")

// ProfileRepository keeps the catalog in insertion order.
type ProfileRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]profile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byID: make(map[string]profile.Profile)}
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return ErrDuplicateID
	}
	r.byID[p.ID] = cloneProfile(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]profile.Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProfile(r.byID[id]))
	}
	return out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return profile.ErrNotFound
	}
	r.byID[p.ID] = cloneProfile(p)
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return profile.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	if p.Interests != nil {
		p.Interests = append([]string(nil), p.Interests...)
	}
	return p
}
