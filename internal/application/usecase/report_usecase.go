package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// FilesRoute prefijo bajo el cual el sandbox sirve los archivos generados.
const FilesRoute = "/arquivos"

// ReportUseCase reportes de stock y movimientos, generación de archivos y descargas.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	files        FileStorage
	renderers    map[string]ReportRenderer
	publicURL    string
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. renderers se indexa por formato (pdf, excel).
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	files FileStorage,
	renderers map[string]ReportRenderer,
	publicURL string,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		files:        files,
		renderers:    renderers,
		publicURL:    strings.TrimRight(publicURL, "/"),
		now:          time.Now,
	}
}

// Stock resumen de stock: productos, ítems y valor total.
func (uc *ReportUseCase) Stock() (*dto.StockReportResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	out := dto.StockReportResponse{TotalProducts: int64(len(products))}
	for _, p := range products {
		out.TotalItems = out.TotalItems.Add(p.Quantity)
		out.TotalValue = out.TotalValue.Add(p.TotalValue())
	}
	return &out, nil
}

// Movements lista los movimientos que cumplen el filtro, con el período aplicado.
func (uc *ReportUseCase) Movements(filter dto.MovementFilter) (*dto.MovementReportResponse, error) {
	list, err := uc.filtered(filter)
	if err != nil {
		return nil, err
	}
	out := dto.MovementReportResponse{
		Period:    dto.PeriodDTO{Start: filter.Start, End: filter.End},
		Movements: make([]dto.MovementResponse, 0, len(list)),
	}
	for _, m := range list {
		out.Movements = append(out.Movements, dto.MovementFromEntity(*m))
	}
	return &out, nil
}

// MovementsByProduct historial completo de un producto existente.
func (uc *ReportUseCase) MovementsByProduct(productID string) ([]dto.MovementResponse, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementFromEntity(*m))
	}
	return out, nil
}

// Generate renderiza el reporte pedido, lo guarda y devuelve su URL de descarga.
func (uc *ReportUseCase) Generate(ctx context.Context, kind, format string, filter dto.MovementFilter) (*dto.FileURLResponse, error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
	}
	var (
		doc ReportDocument
		err error
	)
	switch kind {
	case dto.ReportKindStock:
		doc, err = uc.stockDocument()
	case dto.ReportKindMovements:
		doc, err = uc.movementsDocument(filter)
	default:
		return nil, fmt.Errorf("tipo %q: %w", kind, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("usecase: renderizar reporte: %w", err)
	}
	name := fmt.Sprintf("relatorio_%s_%s_%s.%s", kind, doc.GeneratedAt.Format("20060102_150405"), uuid.NewString()[:8], renderer.Extension())
	file, err := uc.files.Save(name, data)
	if err != nil {
		return nil, err
	}
	return &dto.FileURLResponse{
		Message: "Relatório gerado com sucesso",
		URL:     uc.fileURL(file.Name),
		File:    file.Name,
	}, nil
}

// Files lista los archivos generados, más recientes primero.
func (uc *ReportUseCase) Files() (*dto.FilesResponse, error) {
	list, err := uc.files.List()
	if err != nil {
		return nil, err
	}
	out := dto.FilesResponse{Files: make([]dto.FileResponse, 0, len(list))}
	for _, f := range list {
		out.Files = append(out.Files, dto.FileResponse{
			Name:      f.Name,
			Size:      f.Size,
			SizeLabel: f.SizeLabel,
			CreatedAt: f.CreatedAt,
			URL:       uc.fileURL(f.Name),
		})
	}
	return &out, nil
}

// FileURL URL de descarga de un archivo existente.
func (uc *ReportUseCase) FileURL(name string) (*dto.FileURLResponse, error) {
	f, err := uc.files.Stat(name)
	if err != nil {
		return nil, err
	}
	return &dto.FileURLResponse{URL: uc.fileURL(f.Name), File: f.Name}, nil
}

func (uc *ReportUseCase) fileURL(name string) string {
	return uc.publicURL + FilesRoute + "/" + url.PathEscape(name)
}

func (uc *ReportUseCase) filtered(filter dto.MovementFilter) ([]*entity.Movement, error) {
	if err := validation.Struct(filter); err != nil {
		return nil, err
	}
	all, err := uc.movementRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Movement, 0, len(all))
	for _, m := range all {
		if filter.Matches(*m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (uc *ReportUseCase) stockDocument() (ReportDocument, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return ReportDocument{}, err
	}
	doc := ReportDocument{
		Title:       "Relatório de Estoque",
		Headers:     []string{"Produto", "Categoria", "Quantidade", "Preço", "Valor total"},
		Widths:      []int{4, 3, 1, 2, 2},
		GeneratedAt: uc.now(),
	}
	items, value := decimal.Zero, decimal.Zero
	for _, p := range products {
		doc.Rows = append(doc.Rows, []string{
			p.Name, p.Category, p.Quantity.String(), FormatMoney(p.Price), FormatMoney(p.TotalValue()),
		})
		items = items.Add(p.Quantity)
		value = value.Add(p.TotalValue())
	}
	doc.Totals = []ReportTotal{
		{Label: "Total de produtos", Value: fmt.Sprint(len(products))},
		{Label: "Itens em estoque", Value: items.String()},
		{Label: "Valor total", Value: FormatMoney(value)},
	}
	return doc, nil
}

func (uc *ReportUseCase) movementsDocument(filter dto.MovementFilter) (ReportDocument, error) {
	list, err := uc.filtered(filter)
	if err != nil {
		return ReportDocument{}, err
	}
	doc := ReportDocument{
		Title:       "Relatório de Movimentações",
		Subtitle:    "Período: " + periodLabel(filter),
		Headers:     []string{"Data", "Produto", "Tipo", "Quantidade", "Usuário"},
		Widths:      []int{3, 4, 1, 1, 3},
		GeneratedAt: uc.now(),
	}
	values := make([]entity.Movement, 0, len(list))
	for _, m := range list {
		doc.Rows = append(doc.Rows, []string{m.Date, m.ProductName, string(m.Type), fmt.Sprint(m.Quantity), m.UserName})
		values = append(values, *m)
	}
	sum := entity.SummarizeMovements(values)
	doc.Totals = []ReportTotal{
		{Label: "Movimentações", Value: fmt.Sprint(sum.Total)},
		{Label: "Entradas", Value: fmt.Sprint(sum.Entries)},
		{Label: "Saídas", Value: fmt.Sprint(sum.Exits)},
	}
	return doc, nil
}

func periodLabel(f dto.MovementFilter) string {
	start, end := f.Start, f.End
	if start == "" {
		start = "início"
	}
	if end == "" {
		end = "hoje"
	}
	return start + " a " + end
}

// FormatMoney formatea en reales con separador de miles: 1234.5 -> "R$ 1.234,50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + string(buf) + "," + frac
}
