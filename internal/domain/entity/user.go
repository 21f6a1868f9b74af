package entity

import "time"

// User cuenta de la aplicación. También es la identidad de la sesión.
// Password nunca forma parte de la entidad: solo viaja en los requests de alta/edición.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Can atajo de Role.Can; un usuario nil no tiene capacidades.
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	return u.Role.Can(c)
}
