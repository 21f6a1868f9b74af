package cli_test

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/application/auth"
	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/events"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/service"
	"github.com/jhoicas/devostorange/internal/application/usecase"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/infrastructure/apiclient"
	"github.com/jhoicas/devostorange/internal/infrastructure/session"
	"github.com/jhoicas/devostorange/internal/interfaces/cli"
	apphttp "github.com/jhoicas/devostorange/internal/interfaces/http"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// roundTripperFunc lleva cada request al sandbox Fiber en proceso.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type navigator struct {
	mu    sync.Mutex
	paths []string
	next  ports.Navigator
}

func (n *navigator) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	next := n.next
	n.mu.Unlock()
	if next != nil {
		next.Navigate(path)
	}
}

func (n *navigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// stack cliente completo (sesión, transporte, servicios) contra el sandbox.
type stack struct {
	store *session.FileStore
	nav   *navigator
	svc   cli.Services
	env   view.Env
}

func newStack(t *testing.T) *stack {
	t.Helper()
	app, err := apphttp.NewSandbox(context.Background(), apphttp.SandboxOptions{
		Name:      "devostorange-e2e",
		JWT:       auth.JWTConfig{Secret: "e2e-secret", ExpMinutes: 60, Issuer: "e2e"},
		FilesDir:  t.TempDir(),
		PublicURL: "http://sandbox.test",
		Seed:      true,
	})
	require.NoError(t, err)

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), logger.Nop())
	nav := &navigator{}
	client := apiclient.New(apiclient.Options{
		BaseURL:  "http://sandbox.test",
		BasePath: view.DefaultBasePath,
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return app.Test(r, -1)
		})},
		Session:   store,
		Navigator: nav,
	})
	return &stack{
		store: store,
		nav:   nav,
		svc: cli.Services{
			Auth:      service.NewAuthService(client, store),
			Users:     service.NewUserService(client),
			Products:  service.NewProductService(client),
			Movements: service.NewMovementService(client),
			Reports:   service.NewReportService(client),
		},
		env: view.Env{
			Session: store,
			Bus:     events.NewBus(logger.Nop()),
			Toaster: view.NewToaster(0),
		},
	}
}

func (s *stack) login(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := s.svc.Auth.Login(context.Background(), dto.LoginRequest{Email: email, Password: usecase.SeedAdminPassword})
	require.NoError(t, err)
	return u
}

func findProduct(list []entity.Product, name string) *entity.Product {
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}

func TestE2E_LoginPersisteSesion(t *testing.T) {
	s := newStack(t)
	u := s.login(t, usecase.SeedAdminEmail)

	assert.Equal(t, entity.RoleAdministrator, u.Role)
	assert.True(t, s.store.IsAuthenticated())
	assert.NotEmpty(t, s.store.Token())

	me, err := s.svc.Auth.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.SeedAdminEmail, me.Email)
}

func TestE2E_LoginFallidoNoNavega(t *testing.T) {
	s := newStack(t)
	_, err := s.svc.Auth.Login(context.Background(), dto.LoginRequest{Email: usecase.SeedAdminEmail, Password: "errada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Credenciais inválidas", err.(*domain.APIError).Message)
	assert.Empty(t, s.nav.last(), "el 401 del login no dispara el cierre global")
}

func TestE2E_ConvergenciaEntreVistas(t *testing.T) {
	s := newStack(t)
	s.login(t, usecase.SeedAdminEmail)
	ctx := context.Background()

	products := view.NewProductsController(s.env, s.svc.Products, s.svc.Movements)
	require.NoError(t, products.Mount(ctx))
	widget, err := products.Create(ctx, view.ProductForm{Name: "Widget", Category: "Peças", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, widget.Quantity.IsZero())

	movements := view.NewMovementsController(s.env, s.svc.Movements, s.svc.Products)
	dashboard := view.NewDashboardController(s.env, s.svc.Products, s.svc.Users)
	require.NoError(t, movements.Mount(ctx))
	require.NoError(t, dashboard.Mount(ctx))

	_, err = movements.Record(ctx, view.MovementForm{ProductID: widget.ID, Type: entity.MovementEntry, Quantity: 3})
	require.NoError(t, err)
	_, err = products.QuickMovement(ctx, view.MovementForm{ProductID: widget.ID, Type: entity.MovementEntry, Quantity: 10})
	require.NoError(t, err)
	movements.Wait()
	dashboard.Wait()
	products.Wait()

	for name, list := range map[string][]entity.Product{
		"produtos":      products.All(),
		"movimentacoes": movements.Products(),
		"dashboard":     dashboard.Products(),
	} {
		p := findProduct(list, "Widget")
		require.NotNil(t, p, name)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(13)), "%s: %s", name, p.Quantity)
	}
	assert.Equal(t, "Widget", movements.Movements()[0].ProductName)

	_, err = movements.Record(ctx, view.MovementForm{ProductID: widget.ID, Type: entity.MovementExit, Quantity: 50})
	require.Error(t, err)
	assert.Equal(t, "Estoque insuficiente", movements.ErrorMessage())
	p := findProduct(dashboard.Products(), "Widget")
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(13)), "una salida rechazada no cambia nada")
}

func TestE2E_TokenInvalidoCierraSesionYVaAlLogin(t *testing.T) {
	s := newStack(t)
	u := s.login(t, usecase.SeedAdminEmail)
	require.NoError(t, s.store.SetSession("token-vencido", u))

	products := view.NewProductsController(s.env, s.svc.Products, s.svc.Movements)
	err := products.Mount(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.False(t, s.store.IsAuthenticated())
	assert.Nil(t, s.store.CurrentUser())
	assert.Equal(t, view.DefaultBasePath+view.RouteLogin, s.nav.last())
}

func TestE2E_FuncionarioVeSoloSusMovimientos(t *testing.T) {
	s := newStack(t)
	s.login(t, usecase.SeedEmployeeEmail)
	ctx := context.Background()

	movements := view.NewMovementsController(s.env, s.svc.Movements, s.svc.Products)
	require.NoError(t, movements.Mount(ctx))
	assert.NotEmpty(t, movements.Movements(), "el servidor devuelve todo el historial")
	assert.Empty(t, movements.Visible(), "los movimientos del seed son del administrador")

	caneta := findProduct(movements.Products(), "Caneta azul")
	require.NotNil(t, caneta)
	_, err := movements.Record(ctx, view.MovementForm{ProductID: caneta.ID, Type: entity.MovementExit, Quantity: 2})
	require.NoError(t, err)

	visible := movements.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Funcionário", visible[0].UserName)

	users := view.NewUsersController(s.env, s.svc.Users)
	require.NoError(t, users.Mount(ctx))
	assert.True(t, users.AccessDenied())
}

func TestE2E_ReportesGeneranArchivos(t *testing.T) {
	s := newStack(t)
	s.login(t, usecase.SeedAdminEmail)
	ctx := context.Background()

	reports := view.NewReportsController(s.env, s.svc.Reports, s.svc.Products)
	require.NoError(t, reports.Mount(ctx))
	assert.Equal(t, int64(5), reports.Stock().TotalProducts)

	url, err := reports.Generate(ctx, dto.ReportKindStock, dto.ReportFormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://sandbox.test/arquivos/"), url)
	require.Len(t, reports.Files(), 1)

	loc, err := reports.DownloadURL(ctx, reports.Files()[0].Name)
	require.NoError(t, err)
	assert.Equal(t, url, loc)
}

func TestE2E_ShellSesionFuncionario(t *testing.T) {
	s := newStack(t)
	input := strings.Join([]string{
		"login " + usecase.SeedEmployeeEmail + " " + usecase.SeedAdminPassword,
		"ir usuarios",
		"ir produtos",
		"novo Grampeador;Papelaria;12.5",
		"sair",
	}, "\n")
	var out bytes.Buffer
	shell := cli.NewShell(strings.NewReader(input), &out, s.env, view.NewGuard(s.store, view.DefaultBasePath), s.svc)
	s.nav.next = shell

	require.NoError(t, shell.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Entre com: login")
	assert.Contains(t, text, "Bem-vindo, Funcionário")
	assert.Contains(t, text, "Grampeador")
	assert.Equal(t, view.RouteProducts, shell.Route())

	list, err := s.svc.Products.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, findProduct(list, "Grampeador"))
}
