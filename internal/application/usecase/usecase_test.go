package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/inventory"
	"github.com/jhoicas/devostorange/internal/application/usecase"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/infrastructure/memory"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeRenderer struct {
	ext  string
	docs []usecase.ReportDocument
}

func (r *fakeRenderer) Render(_ context.Context, doc usecase.ReportDocument) ([]byte, error) {
	r.docs = append(r.docs, doc)
	return []byte("conteudo"), nil
}

func (r *fakeRenderer) Extension() string { return r.ext }

type fakeFiles struct {
	saved map[string][]byte
	order []string
}

func newFakeFiles() *fakeFiles { return &fakeFiles{saved: map[string][]byte{}} }

func (f *fakeFiles) Save(name string, data []byte) (entity.ReportFile, error) {
	f.saved[name] = data
	f.order = append([]string{name}, f.order...)
	return entity.ReportFile{Name: name, Size: int64(len(data))}, nil
}

func (f *fakeFiles) List() ([]entity.ReportFile, error) {
	out := make([]entity.ReportFile, 0, len(f.order))
	for _, n := range f.order {
		out = append(out, entity.ReportFile{Name: n, Size: int64(len(f.saved[n]))})
	}
	return out, nil
}

func (f *fakeFiles) Stat(name string) (entity.ReportFile, error) {
	data, ok := f.saved[name]
	if !ok {
		return entity.ReportFile{}, domain.ErrNotFound
	}
	return entity.ReportFile{Name: name, Size: int64(len(data))}, nil
}

type env struct {
	users     *usecase.UserUseCase
	products  *usecase.ProductUseCase
	movements *inventory.RegisterMovementUseCase
	reports   *usecase.ReportUseCase
	pdf       *fakeRenderer
	files     *fakeFiles
}

func newEnv(t *testing.T) env {
	t.Helper()
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	productRepo := memory.NewProductRepository(store)
	e := env{
		users:     usecase.NewUserUseCase(userRepo),
		products:  usecase.NewProductUseCase(productRepo),
		movements: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), userRepo),
		pdf:       &fakeRenderer{ext: "pdf"},
		files:     newFakeFiles(),
	}
	e.reports = usecase.NewReportUseCase(productRepo, memory.NewMovementRepository(store), e.files,
		map[string]usecase.ReportRenderer{dto.ReportFormatPDF: e.pdf}, "http://local/")
	return e
}

func (e env) product(t *testing.T, name, price string, stock int64) dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(dto.CreateProductRequest{Name: name, Category: "Peças", Price: decimal.RequireFromString(price)})
	require.NoError(t, err)
	if stock > 0 {
		_, err = e.movements.RegisterMovement(context.Background(), inventory.MovementInputDTO{
			ProductID: p.ID.String(), Type: entity.MovementEntry, Quantity: stock,
		})
		require.NoError(t, err)
	}
	return *p
}

// ── usuarios ──────────────────────────────────────────────────────────────────

func TestUserUseCase_EmailUnico(t *testing.T) {
	e := newEnv(t)
	a, err := e.users.Create(dto.CreateUserRequest{Name: "Ana", Email: "ana@local.com.br", Password: "1", Role: "funcionario"})
	require.NoError(t, err)
	b, err := e.users.Create(dto.CreateUserRequest{Name: "Bia", Email: "bia@local.com.br", Password: "1", Role: "funcionario"})
	require.NoError(t, err)

	_, err = e.users.Create(dto.CreateUserRequest{Name: "Ana 2", Email: "ANA@local.com.br", Password: "1", Role: "funcionario"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = e.users.Update(b.ID.String(), dto.UpdateUserRequest{Name: "Bia", Email: "ana@local.com.br", Role: "funcionario"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = e.users.Update(a.ID.String(), dto.UpdateUserRequest{Name: "Ana Paula", Email: "ana@local.com.br", Role: "administrador"})
	assert.NoError(t, err, "el propio usuario puede conservar su email")
}

func TestUserUseCase_ValidaAntesDePersistir(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.Create(dto.CreateUserRequest{Name: "Ana", Email: "ana", Password: "1", Role: "gerente"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("email"))
	assert.NotEmpty(t, verr.Field("tipo"))

	list, _ := e.users.List()
	assert.Empty(t, list)
}

func TestUserUseCase_NoEncontrado(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.GetByID("nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = e.users.Update("nope", dto.UpdateUserRequest{Name: "X", Email: "x@x.com", Role: "funcionario"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ── productos ─────────────────────────────────────────────────────────────────

func TestProductUseCase_CantidadSoloViaMovimientos(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.Create(dto.CreateProductRequest{Name: "Widget", Category: "Peças", Quantity: decimal.NewFromInt(40), Price: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.True(t, p.Quantity.IsZero())

	_, err = e.movements.RegisterMovement(context.Background(), inventory.MovementInputDTO{ProductID: p.ID.String(), Type: entity.MovementEntry, Quantity: 7})
	require.NoError(t, err)

	updated, err := e.products.Update(p.ID.String(), dto.UpdateProductRequest{Name: "Widget XL", Category: "Peças", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(7)), "el update conserva la cantidad")
	assert.Equal(t, "Widget XL", updated.Name)
}

func TestProductUseCase_PrecioNegativo(t *testing.T) {
	e := newEnv(t)
	_, err := e.products.Create(dto.CreateProductRequest{Name: "Widget", Category: "Peças", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── reportes ──────────────────────────────────────────────────────────────────

func TestReportUseCase_Stock(t *testing.T) {
	e := newEnv(t)
	e.product(t, "Widget", "2.50", 4)
	e.product(t, "Gadget", "10", 1)

	out, err := e.reports.Stock()
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.TotalProducts)
	assert.True(t, out.TotalItems.Equal(decimal.NewFromInt(5)))
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(20)))
}

func TestReportUseCase_MovimientosFiltradosPorProducto(t *testing.T) {
	e := newEnv(t)
	w := e.product(t, "Widget", "1", 4)
	e.product(t, "Gadget", "1", 2)

	out, err := e.reports.Movements(dto.MovementFilter{ProductID: w.ID.String()})
	require.NoError(t, err)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, "Widget", out.Movements[0].ProductName)

	_, err = e.reports.Movements(dto.MovementFilter{Start: "ontem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.reports.MovementsByProduct("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportUseCase_GenerarGuardaYDevuelveURL(t *testing.T) {
	e := newEnv(t)
	e.product(t, "Widget", "1234.5", 2)

	out, err := e.reports.Generate(context.Background(), dto.ReportKindStock, dto.ReportFormatPDF, dto.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, "http://local/arquivos/"+out.File, out.URL)
	assert.Contains(t, e.files.saved, out.File)

	require.Len(t, e.pdf.docs, 1)
	doc := e.pdf.docs[0]
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "R$ 2.469,00", doc.Rows[0][4])
	assert.Len(t, doc.Widths, len(doc.Headers))

	files, err := e.reports.Files()
	require.NoError(t, err)
	require.Len(t, files.Files, 1)
	assert.Equal(t, out.URL, files.Files[0].URL)

	loc, err := e.reports.FileURL(out.File)
	require.NoError(t, err)
	assert.Equal(t, out.URL, loc.URL)
}

func TestReportUseCase_GenerarRechazaTipoYFormato(t *testing.T) {
	e := newEnv(t)
	_, err := e.reports.Generate(context.Background(), "vendas", dto.ReportFormatPDF, dto.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.reports.Generate(context.Background(), dto.ReportKindStock, dto.ReportFormatExcel, dto.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato sin renderer registrado")
	assert.Empty(t, e.files.saved)
}

func TestReportUseCase_DocumentoDeMovimientos(t *testing.T) {
	e := newEnv(t)
	e.product(t, "Widget", "1", 3)

	_, err := e.reports.Generate(context.Background(), dto.ReportKindMovements, dto.ReportFormatPDF, dto.MovementFilter{Start: "2000-01-01"})
	require.NoError(t, err)
	doc := e.pdf.docs[0]
	assert.Equal(t, "Período: 2000-01-01 a hoje", doc.Subtitle)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "entrada", doc.Rows[0][2])
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 0,00", usecase.FormatMoney(decimal.Zero))
	assert.Equal(t, "R$ 999,90", usecase.FormatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "R$ 1.234.567,89", usecase.FormatMoney(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-R$ 5,00", usecase.FormatMoney(decimal.NewFromInt(-5)))
}

// ── seed ──────────────────────────────────────────────────────────────────────

func TestSeed_CargaAdministradorYProductos(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, usecase.Seed(context.Background(), e.users, e.products, e.movements))

	users, _ := e.users.List()
	require.Len(t, users, 2)
	assert.Equal(t, usecase.SeedAdminEmail, users[0].Email)
	assert.Equal(t, "administrador", users[0].Role)

	products, _ := e.products.List()
	assert.NotEmpty(t, products)

	report, err := e.reports.Movements(dto.MovementFilter{})
	require.NoError(t, err)
	for _, m := range report.Movements {
		assert.Equal(t, "Administrador", m.UserName)
	}
}
