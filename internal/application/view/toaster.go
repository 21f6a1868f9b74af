package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind tipo visual de la notificación.
type ToastKind string

// Tipos de toast.
const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// DefaultToastDismiss retardo de auto-cierre.
const DefaultToastDismiss = 4500 * time.Millisecond

// Toast notificación efímera.
type Toast struct {
	ID        string
	Kind      ToastKind
	Message   string
	CreatedAt time.Time
}

// Toaster pila de notificaciones, la más reciente primero. Cada una se cierra sola tras el retardo.
type Toaster struct {
	mu     sync.Mutex
	toasts []Toast
	delay  time.Duration
}

// NewToaster crea el toaster; delay <= 0 usa DefaultToastDismiss.
func NewToaster(delay time.Duration) *Toaster {
	if delay <= 0 {
		delay = DefaultToastDismiss
	}
	return &Toaster{delay: delay}
}

// Push agrega una notificación y devuelve su id.
func (t *Toaster) Push(kind ToastKind, message string) string {
	toast := Toast{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: time.Now()}
	t.mu.Lock()
	t.toasts = append([]Toast{toast}, t.toasts...)
	t.mu.Unlock()
	time.AfterFunc(t.delay, func() { t.Dismiss(toast.ID) })
	return toast.ID
}

// Success atajo de Push(ToastSuccess, ...).
func (t *Toaster) Success(message string) string { return t.Push(ToastSuccess, message) }

// Error atajo de Push(ToastError, ...).
func (t *Toaster) Error(message string) string { return t.Push(ToastError, message) }

// Info atajo de Push(ToastInfo, ...).
func (t *Toaster) Info(message string) string { return t.Push(ToastInfo, message) }

// Dismiss cierra la notificación; id desconocido no hace nada.
func (t *Toaster) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// List notificaciones visibles, la más reciente primero.
func (t *Toaster) List() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}
