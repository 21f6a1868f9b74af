package repository

import "github.com/jhoicas/devostorange/internal/domain/entity"

// UserRepository puerto de persistencia para User.
// El hash de la contraseña se guarda aparte de la entidad; un hash vacío en Update conserva el actual.
type UserRepository interface {
	Create(user *entity.User, passwordHash string) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	PasswordHash(id string) (string, error)
	Update(user *entity.User, passwordHash string) error
	List() ([]*entity.User, error)
	Delete(id string) error
}
