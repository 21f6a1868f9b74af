package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// record contenido del archivo de sesión. Las claves son fijas.
type record struct {
	AccessToken string            `json:"access_token,omitempty"`
	User        *dto.UserResponse `json:"user,omitempty"`
}

// FileStore sesión persistida en un archivo JSON. Una sola instancia por proceso.
type FileStore struct {
	path   string
	logger *logger.Logger

	mu    sync.RWMutex
	token string
	user  *entity.User
}

var _ ports.SessionStore = (*FileStore)(nil)

// NewFileStore crea el store sin leer el disco; llamar Load al arrancar.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	if log == nil {
		log = logger.Nop()
	}
	return &FileStore{path: path, logger: log.Named("session")}
}

// Load restaura token e identidad. Archivo inexistente = sesión cerrada sin error.
// Archivo ilegible o corrupto = sesión cerrada y error.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("session: leer %s: %w", s.path, err)
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return fmt.Errorf("session: archivo corrupto %s: %w", s.path, err)
	}
	s.token = rec.AccessToken
	if rec.User != nil {
		s.user = rec.User.ToEntity()
	}
	s.logger.Debug().Bool("autenticado", s.token != "").Msg("sesión restaurada")
	return nil
}

// SetSession guarda token e identidad en memoria y en disco.
func (s *FileStore) SetSession(token string, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = cloneUser(user)

	rec := record{AccessToken: token}
	if user != nil {
		u := dto.UserFromEntity(user)
		rec.User = &u
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("session: escribir %s: %w", s.path, err)
	}
	return nil
}

// SetUser reemplaza solo la identidad (p. ej. tras GET /api/users/me).
func (s *FileStore) SetUser(user *entity.User) error {
	return s.SetSession(s.Token(), user)
}

// Clear borra token e identidad.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: borrar %s: %w", s.path, err)
	}
	return nil
}

// Token token vigente ("" si no hay sesión).
func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated hay token.
func (s *FileStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser copia de la identidad autenticada (nil si no hay).
func (s *FileStore) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// Snapshot sesión actual como valor.
func (s *FileStore) Snapshot() entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.Session{Token: s.token, User: cloneUser(s.user)}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
