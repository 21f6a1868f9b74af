package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

func TestUsers_FuncionarioAccesoDenegadoSinRequests(t *testing.T) {
	h := newHarness(t, entity.RoleEmployee)
	c := view.NewUsersController(h.env, h.users())

	require.NoError(t, c.Mount(context.Background()))
	defer c.Unmount()

	assert.True(t, c.AccessDenied())
	assert.Equal(t, 0, h.backend.total())
	_, err := c.Create(context.Background(), view.UserForm{Name: "X", Email: "x@local.com.br", Password: "1", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, view.ErrAccessDenied)
}

func TestUsers_CRUDYBusquedaLocal(t *testing.T) {
	h := newHarness(t, entity.RoleAdministrator)
	h.backend.seedUser("Admin", "admin@local.com.br", entity.RoleAdministrator)
	ana := h.backend.seedUser("Ana Souza", "ana@empresa.com", entity.RoleEmployee)
	c := view.NewUsersController(h.env, h.users())
	require.NoError(t, c.Mount(context.Background()))
	defer c.Unmount()
	ctx := context.Background()

	assert.False(t, c.AccessDenied())
	require.Len(t, c.Users(), 2)

	c.Search("EMPRESA")
	require.Len(t, c.Users(), 1)
	assert.Equal(t, ana.ID, c.Users()[0].ID)
	c.Search("")

	created, err := c.Create(ctx, view.UserForm{Name: "Bia", Email: "bia@local.com.br", Password: "secreta", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Len(t, c.Users(), 3)

	updated, err := c.Update(ctx, created.ID, view.UserForm{Name: "Bia Lima", Email: "bia@local.com.br", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, "Bia Lima", updated.Name)

	require.NoError(t, c.Delete(ctx, ana.ID))
	assert.Len(t, c.Users(), 2)
	for _, u := range c.Users() {
		assert.NotEqual(t, ana.ID, u.ID)
	}
	assert.Equal(t, 1, h.backend.count("users.list"))
}

func TestUsers_AltaSinPasswordNoHaceRequest(t *testing.T) {
	h := newHarness(t, entity.RoleAdministrator)
	c := view.NewUsersController(h.env, h.users())
	require.NoError(t, c.Mount(context.Background()))
	defer c.Unmount()

	_, err := c.Create(context.Background(), view.UserForm{Name: "Bia", Email: "bia@local.com.br", Role: entity.RoleEmployee})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Field("password"))
	assert.Equal(t, 0, h.backend.count("users.create"))
}

func TestUsers_NombreYEmailObligatorios(t *testing.T) {
	h := newHarness(t, entity.RoleAdministrator)
	c := view.NewUsersController(h.env, h.users())
	require.NoError(t, c.Mount(context.Background()))
	defer c.Unmount()

	_, err := c.Update(context.Background(), "1", view.UserForm{Role: entity.RoleEmployee})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Field("nome"))
	assert.NotEmpty(t, verr.Field("email"))
	assert.Equal(t, 0, h.backend.count("users.update"))
}
