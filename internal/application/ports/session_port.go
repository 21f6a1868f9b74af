package ports

import "github.com/jhoicas/devostorange/internal/domain/entity"

// TokenSource entrega el token vigente. El transporte lo lee en cada request.
type TokenSource interface {
	Token() string
}

// SessionStore puerto de la sesión persistida (token + identidad).
type SessionStore interface {
	TokenSource
	CurrentUser() *entity.User
	IsAuthenticated() bool
	SetSession(token string, user *entity.User) error
	Clear() error
}

// Navigator cambia la ruta visible de la aplicación.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(path string)

// Navigate implementa Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }
