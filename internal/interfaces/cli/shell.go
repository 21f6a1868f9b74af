package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// Services servicios remotos que usa el shell.
type Services struct {
	Auth      ports.AuthAPI
	Users     ports.UserAPI
	Products  ports.ProductAPI
	Movements ports.MovementAPI
	Reports   ports.ReportAPI
}

// page vista montada en el shell.
type page interface {
	Mount(ctx context.Context) error
	Unmount()
	Wait()
}

// Shell front end interactivo: una ruta activa a la vez, cada una con su controlador.
type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	env    view.Env
	guard  *view.Guard
	svc    Services
	logger *logger.Logger

	route     string
	current   page
	products  *view.ProductsController
	movements *view.MovementsController
	dashboard *view.DashboardController
	users     *view.UsersController
	reports   *view.ReportsController

	seenToasts map[string]bool

	mu      sync.Mutex
	pending string
}

var _ ports.Navigator = (*Shell)(nil)

// NewShell crea el shell. Debe registrarse como Navigator del transporte.
func NewShell(in io.Reader, out io.Writer, env view.Env, guard *view.Guard, svc Services) *Shell {
	log := env.Logger
	if log == nil {
		log = logger.Nop()
	}
	if env.Toaster == nil {
		env.Toaster = view.NewToaster(0)
	}
	return &Shell{
		in:         bufio.NewScanner(in),
		out:        out,
		env:        env,
		guard:      guard,
		svc:        svc,
		logger:     log.Named("cli"),
		seenToasts: map[string]bool{},
	}
}

// Navigate implementa ports.Navigator. La navegación se aplica al terminar el comando en curso.
func (s *Shell) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = path
}

func (s *Shell) takePending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = ""
	return p
}

// Route ruta activa.
func (s *Shell) Route() string { return s.route }

// Run bucle principal. Termina con "sair" o fin de la entrada.
func (s *Shell) Run(ctx context.Context) error {
	s.goTo(ctx, view.RouteRoot)
	for {
		fmt.Fprintf(s.out, "devostorange %s> ", s.route)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if !s.exec(ctx, line) {
			break
		}
		s.flushToasts()
		if p := s.takePending(); p != "" {
			s.goTo(ctx, p)
		}
	}
	s.unmount()
	return s.in.Err()
}

// exec ejecuta una línea; false = salir.
func (s *Shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "ajuda", "help":
		s.help()
	case "sair", "exit":
		fmt.Fprintln(s.out, "Até logo")
		return false
	case "login":
		s.login(ctx, args)
	case "logout":
		if err := s.svc.Auth.Logout(ctx); err != nil {
			s.printErr(err)
		}
		s.goTo(ctx, view.RouteLogin)
	case "perfil":
		s.profile(ctx)
	case "ir", "go":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "uso: ir <dashboard|produtos|movimentacoes|usuarios|relatorios>")
			return true
		}
		s.goTo(ctx, "/"+strings.TrimPrefix(args[0], "/"))
	case "listar", "ls":
		s.render()
	case "recarregar":
		s.reload(ctx)
	case "erro":
		s.dismissError()
	default:
		if !s.pageCommand(ctx, cmd, rest, args) {
			fmt.Fprintln(s.out, "Comando desconhecido. Digite 'ajuda'.")
		}
	}
	return true
}

// goTo aplica el guard (siguiendo redirecciones) y monta la vista de destino.
func (s *Shell) goTo(ctx context.Context, path string) {
	route := s.guard.Normalize(path)
	for i := 0; i < 4; i++ {
		d := s.guard.Check(route)
		if d.Allow {
			break
		}
		route = d.Redirect
	}
	s.unmount()
	s.route = route
	s.logger.Debug().Str("route", s.guard.URL(route)).Msg("navegación")

	switch route {
	case view.RouteDashboard:
		s.dashboard = view.NewDashboardController(s.env, s.svc.Products, s.svc.Users)
		s.current = s.dashboard
	case view.RouteProducts:
		s.products = view.NewProductsController(s.env, s.svc.Products, s.svc.Movements)
		s.current = s.products
	case view.RouteMovements:
		s.movements = view.NewMovementsController(s.env, s.svc.Movements, s.svc.Products)
		s.current = s.movements
	case view.RouteUsers:
		s.users = view.NewUsersController(s.env, s.svc.Users)
		s.current = s.users
	case view.RouteReports:
		s.reports = view.NewReportsController(s.env, s.svc.Reports, s.svc.Products)
		s.current = s.reports
	default:
		fmt.Fprintln(s.out, "Entre com: login <email> <senha>  (demo: admin@local.com.br / 123456)")
		return
	}
	if err := s.current.Mount(ctx); err != nil {
		s.printErr(err)
	}
	s.render()
}

func (s *Shell) unmount() {
	if s.current != nil {
		s.current.Unmount()
		s.current.Wait()
	}
	s.current = nil
	s.products, s.movements, s.dashboard, s.users, s.reports = nil, nil, nil, nil, nil
}

func (s *Shell) reload(ctx context.Context) {
	var err error
	switch {
	case s.products != nil:
		err = s.products.Load(ctx)
	case s.movements != nil:
		err = s.movements.Load(ctx)
	case s.dashboard != nil:
		err = s.dashboard.Load(ctx)
	case s.users != nil:
		err = s.users.Load(ctx)
	case s.reports != nil:
		err = s.reports.Load(ctx)
	}
	if err != nil {
		s.printErr(err)
	}
	s.render()
}

func (s *Shell) dismissError() {
	type dismisser interface{ DismissError() }
	if d, ok := s.current.(dismisser); ok {
		d.DismissError()
	}
}

func (s *Shell) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "uso: login <email> <senha>")
		return
	}
	user, err := s.svc.Auth.Login(ctx, dto.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Bem-vindo, %s (%s)\n", user.Name, user.Role)
	s.goTo(ctx, view.RouteDashboard)
}

func (s *Shell) profile(ctx context.Context) {
	user, err := s.svc.Auth.Profile(ctx)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "%s <%s> %s\n", user.Name, user.Email, user.Role)
}

func (s *Shell) printErr(err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(s.out, "Erro (%d): %s\n", apiErr.Status, apiErr.Error())
		return
	}
	fmt.Fprintf(s.out, "Erro: %v\n", err)
}

// flushToasts imprime las notificaciones nuevas.
func (s *Shell) flushToasts() {
	list := s.env.Toaster.List()
	for i := len(list) - 1; i >= 0; i-- {
		t := list[i]
		if s.seenToasts[t.ID] {
			continue
		}
		s.seenToasts[t.ID] = true
		fmt.Fprintf(s.out, "[%s] %s\n", t.Kind, t.Message)
	}
}

func (s *Shell) help() {
	fmt.Fprint(s.out, `Comandos gerais:
  login <email> <senha> | logout | perfil | ir <rota> | listar | recarregar | erro | sair
Produtos:
  buscar <texto> | novo <nome>;<categoria>;<preço> | editar <id> <nome>;<categoria>;<preço>
  excluir <id> | entrada <id> <qtd> | saida <id> <qtd>
Movimentações:
  entrada <id> <qtd> | saida <id> <qtd> | filtro <inicio> <fim> [produto] | limpar | recentes on|off
Usuários:
  buscar <texto> | novo <nome>;<email>;<senha>;<tipo> | editar <id> <nome>;<email>;[senha];<tipo> | excluir <id>
Relatórios:
  movimentos <inicio> <fim> [produto] | historico <produto> | gerar <estoque|movimentacoes> <pdf|excel>
  baixar <arquivo>
`)
}
