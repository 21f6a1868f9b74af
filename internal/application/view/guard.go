package view

import (
	"strings"

	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// Rutas de la aplicación, relativas al base path.
const (
	RouteRoot      = "/"
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
	RouteProducts  = "/produtos"
	RouteMovements = "/movimentacoes"
	RouteUsers     = "/usuarios"
	RouteReports   = "/relatorios"
)

// DefaultBasePath prefijo fijo de las rutas.
const DefaultBasePath = "/devostorange"

type routeRule struct {
	public bool
	cap    entity.Capability // 0 = cualquier usuario autenticado
}

var routes = map[string]routeRule{
	RouteLogin:     {public: true},
	RouteDashboard: {},
	RouteProducts:  {},
	RouteMovements: {},
	RouteUsers:     {cap: entity.CapManageUsers},
	RouteReports:   {cap: entity.CapViewReports},
}

// Decision resultado de Guard.Check. Redirect vacío = Allow.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decide el acceso a una ruta antes de montar la vista.
type Guard struct {
	session  ports.SessionStore
	basePath string
}

// NewGuard crea el guard.
func NewGuard(session ports.SessionStore, basePath string) *Guard {
	return &Guard{session: session, basePath: strings.TrimRight(basePath, "/")}
}

// Normalize quita el base path y la barra final: "/devostorange/produtos/" → "/produtos".
func (g *Guard) Normalize(path string) string {
	p := path
	if g.basePath != "" && strings.HasPrefix(p, g.basePath) {
		p = strings.TrimPrefix(p, g.basePath)
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return RouteRoot
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// URL ruta absoluta con el base path.
func (g *Guard) URL(route string) string {
	return g.basePath + route
}

// Check sin sesión → /login; rol sin la capacidad o ruta desconocida → /dashboard; "/" → /dashboard.
func (g *Guard) Check(path string) Decision {
	route := g.Normalize(path)
	if route == RouteRoot {
		return Decision{Redirect: RouteDashboard}
	}
	rule, known := routes[route]
	if !known {
		return Decision{Redirect: RouteDashboard}
	}
	if rule.public {
		return Decision{Allow: true}
	}
	if !g.session.IsAuthenticated() {
		return Decision{Redirect: RouteLogin}
	}
	if rule.cap != 0 && !g.session.CurrentUser().Can(rule.cap) {
		return Decision{Redirect: RouteDashboard}
	}
	return Decision{Allow: true}
}
