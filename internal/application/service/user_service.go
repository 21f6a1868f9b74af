package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// UserService CRUD de /api/users.
type UserService struct {
	api ports.Transport
}

var _ ports.UserAPI = (*UserService)(nil)

// NewUserService crea el servicio.
func NewUserService(api ports.Transport) *UserService {
	return &UserService{api: api}
}

func userPath(id string) string { return "/api/users/" + url.PathEscape(id) }

// List GET /api/users.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	var out []dto.UserResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/users", nil, nil, &out); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(out))
	for _, u := range out {
		users = append(users, *u.ToEntity())
	}
	return users, nil
}

// Get GET /api/users/{id}.
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	var out dto.UserResponse
	if err := s.api.Do(ctx, http.MethodGet, userPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Create POST /api/users.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	var out dto.UserResponse
	if err := s.api.Do(ctx, http.MethodPost, "/api/users", nil, req, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Update PATCH /api/users/{id}. Password vacío no viaja.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.User, error) {
	var out dto.UserResponse
	if err := s.api.Do(ctx, http.MethodPatch, userPath(id), nil, req, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Delete DELETE /api/users/{id}.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}
