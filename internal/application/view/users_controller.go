package view

import (
	"context"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// FormUser formulario de alta/edición de usuario.
const FormUser = "usuario"

// UserForm campos del formulario. Password: obligatorio en alta, opcional en edición.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

func (f UserForm) createRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{Name: f.Name, Email: f.Email, Password: f.Password, Role: f.Role.String()}
}

func (f UserForm) updateRequest() dto.UpdateUserRequest {
	return dto.UpdateUserRequest{Name: f.Name, Email: f.Email, Password: f.Password, Role: f.Role.String()}
}

// UsersController vista /usuarios (solo administradores).
type UsersController struct {
	base
	users ports.UserAPI

	list   []entity.User
	query  string
	denied bool
}

// NewUsersController crea el controlador.
func NewUsersController(env Env, users ports.UserAPI) *UsersController {
	return &UsersController{base: newBase(env, "view.usuarios"), users: users}
}

// Mount sin CapManageUsers deja la vista en acceso denegado sin hacer requests.
func (c *UsersController) Mount(ctx context.Context) error {
	c.attach(nil)
	allowed := c.currentUser().Can(entity.CapManageUsers)
	c.mu.Lock()
	c.denied = !allowed
	c.mu.Unlock()
	if !allowed {
		return nil
	}
	return c.Load(ctx)
}

// AccessDenied indica que la vista muestra acceso denegado.
func (c *UsersController) AccessDenied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.denied
}

func (c *UsersController) ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return ErrNotMounted
	}
	if c.denied {
		return ErrAccessDenied
	}
	return nil
}

// Load reemplaza el listado.
func (c *UsersController) Load(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	list, err := c.users.List(ctx)
	if err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.list = list
	}
	return nil
}

// Search consulta local por nombre o email.
func (c *UsersController) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// Users listado visible.
func (c *UsersController) Users() []entity.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterUsers(c.list, c.query)
}

// Create da de alta un usuario.
func (c *UsersController) Create(ctx context.Context, form UserForm) (*entity.User, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	req := form.createRequest()
	if err := validation.Struct(req); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormUser); err != nil {
		return nil, err
	}
	defer c.end(FormUser)

	u, err := c.users.Create(ctx, req)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		c.list = append(c.list, *u)
	}
	c.mu.Unlock()
	c.succeed("Usuário criado com sucesso")
	return u, nil
}

// Update edita un usuario; Password vacío mantiene la actual.
func (c *UsersController) Update(ctx context.Context, id string, form UserForm) (*entity.User, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	req := form.updateRequest()
	if err := validation.Struct(req); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormUser); err != nil {
		return nil, err
	}
	defer c.end(FormUser)

	u, err := c.users.Update(ctx, id, req)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		for i := range c.list {
			if c.list[i].ID == u.ID {
				c.list[i] = *u
			}
		}
	}
	c.mu.Unlock()
	c.succeed("Usuário atualizado com sucesso")
	return u, nil
}

// Delete elimina y quita el usuario del listado local sin recargar.
func (c *UsersController) Delete(ctx context.Context, id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.begin(FormDelete); err != nil {
		return err
	}
	defer c.end(FormDelete)

	if err := c.users.Delete(ctx, id); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		out := c.list[:0]
		for _, u := range c.list {
			if u.ID != id {
				out = append(out, u)
			}
		}
		c.list = out
	}
	c.mu.Unlock()
	c.succeed("Usuário excluído com sucesso")
	return nil
}
