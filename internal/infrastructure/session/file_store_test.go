package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/infrastructure/session"
)

func newStore(t *testing.T) (*session.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devostorange", "session.json")
	return session.NewFileStore(path, nil), path
}

func TestLoad_SinArchivoEsSesionCerrada(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Load())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
}

func TestSetSession_PersisteYRestaura(t *testing.T) {
	store, path := newStore(t)
	admin := &entity.User{ID: "1", Name: "Admin", Email: "admin@local.com.br", Role: entity.RoleAdministrator}
	require.NoError(t, store.SetSession("tok-123", admin))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"access_token"`)
	assert.Contains(t, string(raw), `"user"`)

	restored := session.NewFileStore(path, nil)
	require.NoError(t, restored.Load())
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "tok-123", restored.Token())
	u := restored.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "admin@local.com.br", u.Email)
	assert.Equal(t, entity.RoleAdministrator, u.Role)
}

func TestClear_BorraAmbos(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.SetSession("tok", &entity.User{ID: "1"}))
	require.NoError(t, store.Clear())

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Clear())
}

func TestLoad_ArchivoCorruptoEsSesionCerradaConError(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.SetSession("tok", &entity.User{ID: "1"}))
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	err := store.Load()
	assert.Error(t, err)
	assert.False(t, store.IsAuthenticated())
}

func TestLoad_SoloTokenSinUsuario(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"abc"}`), 0o600))

	require.NoError(t, store.Load())
	assert.True(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
}

func TestCurrentUser_DevuelveCopia(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.SetSession("tok", &entity.User{ID: "1", Name: "Ana"}))
	u := store.CurrentUser()
	u.Name = "Mutada"
	assert.Equal(t, "Ana", store.CurrentUser().Name)
}
