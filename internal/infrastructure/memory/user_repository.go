package memory

import (
	"strings"

	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository.
type UserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

// Create inserta un usuario con su hash de contraseña.
func (r *UserRepository) Create(user *entity.User, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrConflict
	}
	r.s.users[user.ID] = userRecord{user: cloneUser(user), hash: passwordHash}
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return nil
}

// GetByID devuelve el usuario o (nil, nil).
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(rec.user), nil
}

// FindByEmail busca sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.userOrder {
		rec := r.s.users[id]
		if strings.EqualFold(rec.user.Email, email) {
			return cloneUser(rec.user), nil
		}
	}
	return nil, nil
}

// PasswordHash devuelve el hash bcrypt guardado.
func (r *UserRepository) PasswordHash(id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return rec.hash, nil
}

// Update reemplaza los datos; con passwordHash vacío se mantiene la contraseña.
func (r *UserRepository) Update(user *entity.User, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if passwordHash == "" {
		passwordHash = rec.hash
	}
	r.s.users[user.ID] = userRecord{user: cloneUser(user), hash: passwordHash}
	return nil
}

// List devuelve los usuarios en orden de alta.
func (r *UserRepository) List() ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		out = append(out, cloneUser(r.s.users[id].user))
	}
	return out, nil
}

// Delete elimina el usuario.
func (r *UserRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	r.s.userOrder = removeID(r.s.userOrder, id)
	return nil
}
