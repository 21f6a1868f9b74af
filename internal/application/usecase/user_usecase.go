package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/devostorange/internal/application/auth"
	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. El email es único sin distinguir mayúsculas.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UserFromEntity(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Create da de alta un usuario con la contraseña hasheada.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(in.Email, ""); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      entity.Role(in.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(user, hash); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Update modifica nombre, email y tipo; la contraseña solo cambia si viene informada.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.ensureEmailFree(in.Email, id); err != nil {
		return nil, err
	}
	var hash string
	if in.Password != "" {
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	user.Name = in.Name
	user.Email = in.Email
	user.Role = entity.Role(in.Role)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user, hash); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *UserUseCase) ensureEmailFree(email, selfID string) error {
	existing, err := uc.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}
