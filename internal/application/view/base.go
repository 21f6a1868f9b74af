package view

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// Valores por defecto de presentación.
const (
	DefaultLowStockThreshold = 5
	DefaultRecentLimit       = 10
)

// Env dependencias compartidas por todos los controladores.
type Env struct {
	Session           ports.SessionStore
	Bus               ports.Notifier
	Toaster           *Toaster
	Logger            *logger.Logger
	LowStockThreshold int
	RecentLimit       int
}

func (e Env) withDefaults() Env {
	if e.Toaster == nil {
		e.Toaster = NewToaster(0)
	}
	if e.Logger == nil {
		e.Logger = logger.Nop()
	}
	if e.LowStockThreshold <= 0 {
		e.LowStockThreshold = DefaultLowStockThreshold
	}
	if e.RecentLimit <= 0 {
		e.RecentLimit = DefaultRecentLimit
	}
	return e
}

// base ciclo de vida común: montaje, banner de error, flags en vuelo y resincronizaciones en segundo plano.
// mu protege también el estado propio de cada controlador.
type base struct {
	env    Env
	logger *logger.Logger

	mu          sync.Mutex
	mounted     bool
	unsubscribe func()
	banner      string
	inFlight    map[string]bool

	wg sync.WaitGroup
}

func newBase(env Env, component string) base {
	env = env.withDefaults()
	return base{env: env, logger: env.Logger.Named(component), inFlight: map[string]bool{}}
}

// attach marca montado y, si h != nil, se suscribe al bus.
func (b *base) attach(h ports.ProductChangedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mounted = true
	b.banner = ""
	if h != nil && b.env.Bus != nil && b.unsubscribe == nil {
		b.unsubscribe = b.env.Bus.Subscribe(h)
	}
}

// Unmount se da de baja del bus; las respuestas que lleguen después se descartan.
func (b *base) Unmount() {
	b.mu.Lock()
	unsub := b.unsubscribe
	b.unsubscribe = nil
	b.mounted = false
	b.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Mounted indica si la vista está montada.
func (b *base) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

// ErrorMessage banner de error de la página ("" si no hay).
func (b *base) ErrorMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

// DismissError cierra el banner.
func (b *base) DismissError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.banner = ""
}

// Wait bloquea hasta que terminen las resincronizaciones pendientes.
func (b *base) Wait() {
	b.wg.Wait()
}

// begin marca el formulario en vuelo; un segundo envío devuelve domain.ErrBusy.
func (b *base) begin(form string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mounted {
		return domain.ErrNotMounted
	}
	if b.inFlight[form] {
		return domain.ErrBusy
	}
	b.inFlight[form] = true
	return nil
}

func (b *base) end(form string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, form)
}

// Busy indica si el formulario tiene un envío en curso.
func (b *base) Busy(form string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight[form]
}

// fail muestra el error en el banner y como toast. Los errores de validación solo van al banner.
func (b *base) fail(err error) error {
	msg := errorMessage(err)
	b.mu.Lock()
	if b.mounted {
		b.banner = msg
	}
	b.mu.Unlock()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		b.env.Toaster.Error(msg)
	}
	return err
}

func (b *base) succeed(msg string) {
	b.env.Toaster.Success(msg)
}

// background ejecuta fn fuera de la pila del llamador; Wait espera a que termine.
func (b *base) background(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

func (b *base) currentUser() *entity.User {
	if b.env.Session == nil {
		return nil
	}
	return b.env.Session.CurrentUser()
}

// errorMessage texto para el usuario.
func errorMessage(err error) string {
	if apiErr, ok := domain.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

// detach contexto que sobrevive al del publicador.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// ErrNotMounted alias de domain.ErrNotMounted para los llamadores de la vista.
var ErrNotMounted = domain.ErrNotMounted

// ErrAccessDenied la vista está montada en estado de acceso denegado.
var ErrAccessDenied = domain.ErrForbidden
