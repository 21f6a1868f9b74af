package view_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/events"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/infrastructure/session"
)

// backend API falsa compartida por los servicios falsos; cuenta las llamadas por operación.
type backend struct {
	mu        sync.Mutex
	seq       int
	products  map[string]entity.Product
	movements []entity.Movement
	users     map[string]entity.User
	calls     map[string]int
	failNext  map[string]error
	// omitProduct hace que el registro de movimientos no devuelva el producto.
	omitProduct bool
	// block, si no es nil, detiene Create de productos hasta que se cierre.
	block chan struct{}
}

func newBackend() *backend {
	return &backend{
		products: map[string]entity.Product{},
		users:    map[string]entity.User{},
		calls:    map[string]int{},
		failNext: map[string]error{},
	}
}

func (b *backend) hit(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	if err, ok := b.failNext[op]; ok {
		delete(b.failNext, op)
		return err
	}
	return nil
}

func (b *backend) fail(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext[op] = err
}

func (b *backend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *backend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *backend) nextID() string {
	b.seq++
	return fmt.Sprintf("%d", b.seq)
}

func (b *backend) seedProduct(name, category string, qty int64, price string) entity.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := entity.Product{ID: b.nextID(), Name: name, Category: category, Quantity: decimal.NewFromInt(qty), Price: decimal.RequireFromString(price)}
	b.products[p.ID] = p
	return p
}

func (b *backend) seedUser(name, email string, role entity.Role) entity.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := entity.User{ID: b.nextID(), Name: name, Email: email, Role: role}
	b.users[u.ID] = u
	return u
}

func (b *backend) seedMovement(m entity.Movement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m.ID == "" {
		m.ID = b.nextID()
	}
	b.movements = append([]entity.Movement{m}, b.movements...)
}

func (b *backend) product(id string) entity.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.products[id]
}

// setProductQty cambia el stock "por fuera" (otra pestaña, otro usuario).
func (b *backend) setProductQty(id string, qty int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.products[id]
	p.Quantity = decimal.NewFromInt(qty)
	b.products[id] = p
}

// ── ProductAPI ──

type productAPI struct{ b *backend }

func (a productAPI) List(context.Context) ([]entity.Product, error) {
	if err := a.b.hit("produtos.list"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	out := make([]entity.Product, 0, len(a.b.products))
	for _, p := range a.b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a productAPI) Get(_ context.Context, id string) (*entity.Product, error) {
	if err := a.b.hit("produtos.get"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	p, ok := a.b.products[id]
	if !ok {
		return nil, &domain.APIError{Message: "Produto não encontrado", Status: 404}
	}
	return &p, nil
}

func (a productAPI) Create(_ context.Context, name, category string, price decimal.Decimal) (*entity.Product, error) {
	if a.b.block != nil {
		<-a.b.block
	}
	if err := a.b.hit("produtos.create"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	p := entity.Product{ID: a.b.nextID(), Name: name, Category: category, Quantity: decimal.Zero, Price: price}
	a.b.products[p.ID] = p
	return &p, nil
}

func (a productAPI) Update(_ context.Context, id, name, category string, price decimal.Decimal) (*entity.Product, error) {
	if err := a.b.hit("produtos.update"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	p, ok := a.b.products[id]
	if !ok {
		return nil, &domain.APIError{Message: "Produto não encontrado", Status: 404}
	}
	p.Name, p.Category, p.Price = name, category, price
	a.b.products[id] = p
	return &p, nil
}

func (a productAPI) Delete(_ context.Context, id string) error {
	if err := a.b.hit("produtos.delete"); err != nil {
		return err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	delete(a.b.products, id)
	return nil
}

// ── MovementAPI ──

type movementAPI struct {
	b    *backend
	user *entity.User
}

func (a movementAPI) RecordEntry(ctx context.Context, productID string, qty int64) (*ports.MovementResult, error) {
	return a.record(entity.MovementEntry, productID, qty)
}

func (a movementAPI) RecordExit(ctx context.Context, productID string, qty int64) (*ports.MovementResult, error) {
	return a.record(entity.MovementExit, productID, qty)
}

func (a movementAPI) record(t entity.MovementType, productID string, qty int64) (*ports.MovementResult, error) {
	if err := a.b.hit("movimentacoes." + string(t)); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	p, ok := a.b.products[productID]
	if !ok {
		return nil, &domain.APIError{Message: "Produto não encontrado", Status: 404}
	}
	delta := decimal.NewFromInt(qty)
	if t == entity.MovementExit {
		if p.Quantity.LessThan(delta) {
			return nil, &domain.APIError{Message: "Estoque insuficiente", Status: 422}
		}
		delta = delta.Neg()
	}
	p.Quantity = p.Quantity.Add(delta)
	a.b.products[productID] = p
	m := entity.Movement{ID: a.b.nextID(), ProductID: productID, ProductName: p.Name, Type: t, Quantity: qty, Date: "2024-03-10 12:00:00"}
	if a.user != nil {
		m.UserID, m.UserName = a.user.ID, a.user.Name
	}
	a.b.movements = append([]entity.Movement{m}, a.b.movements...)
	res := &ports.MovementResult{Message: "ok", Movement: &m}
	if !a.b.omitProduct {
		cp := p
		res.Product = &cp
	}
	return res, nil
}

func (a movementAPI) List(_ context.Context, filter dto.MovementFilter) ([]entity.Movement, error) {
	if err := a.b.hit("movimentacoes.list"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	out := make([]entity.Movement, 0, len(a.b.movements))
	for _, m := range a.b.movements {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── UserAPI ──

type userAPI struct{ b *backend }

func (a userAPI) List(context.Context) ([]entity.User, error) {
	if err := a.b.hit("users.list"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	out := make([]entity.User, 0, len(a.b.users))
	for _, u := range a.b.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a userAPI) Get(_ context.Context, id string) (*entity.User, error) {
	if err := a.b.hit("users.get"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	u := a.b.users[id]
	return &u, nil
}

func (a userAPI) Create(_ context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	if err := a.b.hit("users.create"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	u := entity.User{ID: a.b.nextID(), Name: req.Name, Email: req.Email, Role: entity.Role(req.Role)}
	a.b.users[u.ID] = u
	return &u, nil
}

func (a userAPI) Update(_ context.Context, id string, req dto.UpdateUserRequest) (*entity.User, error) {
	if err := a.b.hit("users.update"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	u := entity.User{ID: id, Name: req.Name, Email: req.Email, Role: entity.Role(req.Role)}
	a.b.users[id] = u
	return &u, nil
}

func (a userAPI) Delete(_ context.Context, id string) error {
	if err := a.b.hit("users.delete"); err != nil {
		return err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	delete(a.b.users, id)
	return nil
}

// ── ReportAPI ──

type reportAPI struct {
	b     *backend
	files []entity.ReportFile
}

func (a *reportAPI) Stock(context.Context) (entity.StockReport, error) {
	if err := a.b.hit("relatorios.estoque"); err != nil {
		return entity.StockReport{}, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	r := entity.StockReport{TotalProducts: int64(len(a.b.products))}
	for _, p := range a.b.products {
		r.TotalItems = r.TotalItems.Add(p.Quantity)
		r.TotalValue = r.TotalValue.Add(p.TotalValue())
	}
	return r, nil
}

func (a *reportAPI) Movements(ctx context.Context, filter dto.MovementFilter) (entity.MovementReport, error) {
	list, err := movementAPI{b: a.b}.List(ctx, filter)
	if err != nil {
		return entity.MovementReport{}, err
	}
	return entity.MovementReport{
		Period:    entity.Period{Start: filter.Start, End: filter.End},
		Movements: list,
		Summary:   entity.SummarizeMovements(list),
	}, nil
}

func (a *reportAPI) MovementsByProduct(ctx context.Context, productID string) ([]entity.Movement, error) {
	return movementAPI{b: a.b}.List(ctx, dto.MovementFilter{ProductID: productID})
}

func (a *reportAPI) Files(context.Context) ([]entity.ReportFile, error) {
	if err := a.b.hit("downloads"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	return append([]entity.ReportFile(nil), a.files...), nil
}

func (a *reportAPI) Generate(_ context.Context, kind, format string, filter dto.MovementFilter) (string, error) {
	if err := a.b.hit("relatorios.gerar"); err != nil {
		return "", err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	name := kind + "." + format
	if filter.Start != "" {
		name = kind + "-" + filter.Start + "." + format
	}
	a.files = append(a.files, entity.ReportFile{Name: name, SizeLabel: "1 KB"})
	return "http://files/" + name, nil
}

func (a *reportAPI) FileURL(_ context.Context, name string) (string, error) {
	if err := a.b.hit("download"); err != nil {
		return "", err
	}
	return "http://files/" + name, nil
}

// ── Entorno ──

type harness struct {
	backend *backend
	session *session.FileStore
	bus     *events.Bus
	toaster *view.Toaster
	env     view.Env
	user    *entity.User
}

func newHarness(t *testing.T, role entity.Role) *harness {
	t.Helper()
	h := &harness{backend: newBackend(), bus: events.NewBus(nil), toaster: view.NewToaster(0)}
	h.session = session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), nil)
	h.user = &entity.User{ID: "u-1", Name: "Usuária", Email: "user@local.com.br", Role: role}
	require.NoError(t, h.session.SetSession("tok", h.user))
	h.env = view.Env{Session: h.session, Bus: h.bus, Toaster: h.toaster}
	return h
}

func (h *harness) products() productAPI { return productAPI{b: h.backend} }

func (h *harness) movements() movementAPI { return movementAPI{b: h.backend, user: h.user} }

func (h *harness) users() userAPI { return userAPI{b: h.backend} }

func (h *harness) lastToast() view.Toast {
	list := h.toaster.List()
	if len(list) == 0 {
		return view.Toast{}
	}
	return list[0]
}

func findProduct(list []entity.Product, id string) (entity.Product, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
