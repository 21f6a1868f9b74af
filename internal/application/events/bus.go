package events

import (
	"context"
	"sync"

	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// Bus difusión síncrona de ports.ProductChanged entre vistas montadas.
// Sin cola ni replay: solo reciben los suscriptores presentes al publicar.
type Bus struct {
	mu     sync.Mutex
	seq    uint64
	subs   []subscription
	logger *logger.Logger
}

type subscription struct {
	id uint64
	h  ports.ProductChangedHandler
}

var _ ports.Notifier = (*Bus)(nil)

// NewBus crea un bus vacío. log puede ser nil.
func NewBus(log *logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{logger: log.Named("events")}
}

// Subscribe registra h y devuelve la función para darlo de baja (idempotente).
func (b *Bus) Subscribe(h ports.ProductChangedHandler) func() {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.subs = append(b.subs, subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish entrega ev a cada suscriptor en orden de suscripción, una vez por handler.
// Los que se suscriben durante la entrega no reciben este aviso.
func (b *Bus) Publish(ctx context.Context, ev ports.ProductChanged) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	b.logger.Debug().Str("produto_id", ev.ProductID).Bool("com_produto", ev.Product != nil).
		Int("subscribers", len(snapshot)).Msg("produto-quantidade-atualizada")

	for _, s := range snapshot {
		b.deliver(ctx, s, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, ev ports.ProductChanged) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Uint64("subscriber", s.id).Str("produto_id", ev.ProductID).
				Msg("handler de evento falló")
		}
	}()
	s.h(ctx, ev)
}

// Len cantidad de suscriptores activos.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
