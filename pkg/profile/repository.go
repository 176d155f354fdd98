package profile

import "context"

// Repository stores the profile catalog. List returns profiles in catalog order,
// which is the order candidates are shown in.
type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
}
