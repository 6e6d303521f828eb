package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
)

// UserRepository implements domain.UserRepository against the users
// collection of the REST store. The store assigns record IDs on create.
type UserRepository struct {
	client *rest.Client
}

// NewUserRepository creates a new user repository.
func NewUserRepository(client *rest.Client) domain.UserRepository {
	return &UserRepository{client: client}
}

// Create implements domain.UserRepository.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	var created domain.User
	if err := r.client.Post(ctx, "/users", user, &created); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = created.ID
	return nil
}

// FindByEmail implements domain.UserRepository. The store answers filter
// queries with an array; zero matches means no such user.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var users []domain.User
	endpoint := "/users?email=" + url.QueryEscape(email)
	if err := r.client.Get(ctx, endpoint, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID implements domain.UserRepository.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.client.Get(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		var httpErr *domain.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
