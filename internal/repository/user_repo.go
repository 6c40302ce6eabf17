package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/store"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SaveAll(ctx context.Context, users []domain.User) error
}

type StoreUserRepository struct {
	users *store.Collection[domain.User]
}

func NewUserRepository(backend store.Backend, name string, opts ...store.Option) UserRepository {
	return &StoreUserRepository{users: store.NewCollection[domain.User](backend, name, opts...)}
}

func (r *StoreUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.users.Load(ctx)
}

func (r *StoreUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if domain.SameEmail(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, domain.NormalizeEmail(email))
}

func (r *StoreUserRepository) SaveAll(ctx context.Context, users []domain.User) error {
	return r.users.Save(ctx, users)
}

var _ UserRepository = (*StoreUserRepository)(nil)
