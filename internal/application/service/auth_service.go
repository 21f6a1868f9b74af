package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// AuthService login, logout y perfil. Es el único que escribe en el SessionStore.
type AuthService struct {
	api     ports.Transport
	session ports.SessionStore
}

var _ ports.AuthAPI = (*AuthService)(nil)

// NewAuthService crea el servicio.
func NewAuthService(api ports.Transport, session ports.SessionStore) *AuthService {
	return &AuthService{api: api, session: session}
}

// Login autentica y guarda token + identidad. Un 401 aquí no toca la sesión existente.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error) {
	var out dto.LoginResponse
	if err := s.api.Do(ctx, http.MethodPost, dto.LoginPath, nil, req, &out); err != nil {
		return nil, err
	}
	user := out.User.ToEntity()
	if err := s.session.SetSession(out.AccessToken, user); err != nil {
		return nil, fmt.Errorf("auth: guardar sesión: %w", err)
	}
	return user, nil
}

// Logout cierra la sesión local; la API no tiene endpoint de logout.
func (s *AuthService) Logout(_ context.Context) error {
	return s.session.Clear()
}

// Profile consulta GET /api/users/me y refresca la identidad guardada.
func (s *AuthService) Profile(ctx context.Context) (*entity.User, error) {
	var out dto.UserResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	user := out.ToEntity()
	if err := s.session.SetSession(s.session.Token(), user); err != nil {
		return nil, fmt.Errorf("auth: guardar perfil: %w", err)
	}
	return user, nil
}
