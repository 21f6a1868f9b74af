package dto

import "github.com/jhoicas/devostorange/internal/domain/entity"

// CreateUserRequest body de POST /api/users. Password es obligatorio en el alta.
type CreateUserRequest struct {
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"tipo" validate:"required,oneof=administrador funcionario"`
}

// UpdateUserRequest body de PATCH /api/users/{id}. Password vacío = mantener la actual.
type UpdateUserRequest struct {
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"tipo" validate:"required,oneof=administrador funcionario"`
	Password string `json:"password,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        ID      `json:"id"`
	Name      string  `json:"nome"`
	Email     string  `json:"email"`
	Role      string  `json:"tipo"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
}

// ToEntity convierte la respuesta en entidad. Un tipo desconocido queda como rol vacío (sin capacidades).
func (r UserResponse) ToEntity() *entity.User {
	role, _ := entity.ParseRole(r.Role)
	return &entity.User{
		ID:        string(r.ID),
		Name:      r.Name,
		Email:     r.Email,
		Role:      role,
		CreatedAt: ParseTimestamp(r.CreatedAt),
		UpdatedAt: ParseTimestamp(r.UpdatedAt),
		DeletedAt: parseNullableTimestamp(r.DeletedAt),
	}
}

// UserFromEntity arma la respuesta a partir de la entidad (sandbox y persistencia de sesión).
func UserFromEntity(u *entity.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        ID(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: FormatTimestamp(u.CreatedAt),
		UpdatedAt: FormatTimestamp(u.UpdatedAt),
		DeletedAt: formatNullableTimestamp(u.DeletedAt),
	}
}

// LoginPath endpoint de login.
const LoginPath = "/api/users/login"

// LoginRequest credenciales de POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso más la identidad autenticada.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}
