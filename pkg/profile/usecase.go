package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase covers reading and editing profiles.
type UseCase interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, id string) (Profile, error)
	Update(ctx context.Context, id string, u Update) (Profile, error)
	Delete(ctx context.Context, id string) error
	// Candidates returns every catalog profile except userID, in catalog order.
	Candidates(ctx context.Context, userID string) ([]Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, p Profile) (Profile, error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Interests = NormalizeInterests(p.Interests)
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, u Update) (Profile, error) {
	if err := u.Validate(); err != nil {
		return Profile{}, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if u.Empty() {
		return p, nil
	}
	p = u.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Candidates(ctx context.Context, userID string) ([]Profile, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(all))
	for _, p := range all {
		if p.ID == userID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
