package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

func (s *Shell) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
}

// render dibuja la vista activa.
func (s *Shell) render() {
	if msg := s.banner(); msg != "" {
		fmt.Fprintf(s.out, "! %s\n", msg)
	}
	switch {
	case s.dashboard != nil:
		s.renderDashboard()
	case s.products != nil:
		s.renderProducts(s.products.Products())
	case s.movements != nil:
		s.renderMovements(s.movements.Visible())
	case s.users != nil:
		if s.users.AccessDenied() {
			fmt.Fprintln(s.out, "Acesso negado: apenas administradores.")
			return
		}
		s.renderUsers(s.users.Users())
	case s.reports != nil:
		if s.reports.AccessDenied() {
			fmt.Fprintln(s.out, "Acesso negado: apenas administradores.")
			return
		}
		s.renderReports()
	}
}

func (s *Shell) banner() string {
	type banner interface{ ErrorMessage() string }
	if b, ok := s.current.(banner); ok {
		return b.ErrorMessage()
	}
	return ""
}

func (s *Shell) renderDashboard() {
	st := s.dashboard.Stats()
	fmt.Fprintf(s.out, "Produtos: %d\nValor em estoque: R$ %s\nEstoque baixo: %d\n", st.TotalProducts, st.TotalValue.StringFixed(2), st.LowStock)
	if st.ShowUsers {
		fmt.Fprintf(s.out, "Usuários: %d\n", st.TotalUsers)
	}
	if low := s.dashboard.LowStockProducts(); len(low) > 0 {
		fmt.Fprintln(s.out, "Produtos com estoque baixo:")
		s.renderProducts(low)
	}
}

func (s *Shell) renderProducts(list []entity.Product) {
	w := s.table()
	fmt.Fprintln(w, "ID\tNOME\tCATEGORIA\tQTD\tPREÇO\tTOTAL")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Quantity.String(), p.Price.StringFixed(2), p.TotalValue().StringFixed(2))
	}
	_ = w.Flush()
}

func (s *Shell) renderMovements(list []entity.Movement) {
	w := s.table()
	fmt.Fprintln(w, "ID\tDATA\tPRODUTO\tTIPO\tQTD\tUSUÁRIO")
	for _, m := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", m.ID, m.Date, m.ProductName, m.Type, m.Quantity, m.UserName)
	}
	_ = w.Flush()
}

func (s *Shell) renderUsers(list []entity.User) {
	w := s.table()
	fmt.Fprintln(w, "ID\tNOME\tEMAIL\tTIPO")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	_ = w.Flush()
}

func (s *Shell) renderReports() {
	st := s.reports.Stock()
	fmt.Fprintf(s.out, "Produtos: %d  Itens: %s  Valor: R$ %s\n", st.TotalProducts, st.TotalItems.String(), st.TotalValue.StringFixed(2))
	files := s.reports.Files()
	if len(files) == 0 {
		return
	}
	w := s.table()
	fmt.Fprintln(w, "ARQUIVO\tTAMANHO\tCRIADO EM")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.SizeLabel, f.CreatedAt)
	}
	_ = w.Flush()
}

func (s *Shell) renderMovementReport(rep entity.MovementReport) {
	fmt.Fprintf(s.out, "Período: %s a %s\n", orDash(rep.Period.Start), orDash(rep.Period.End))
	fmt.Fprintf(s.out, "Total: %d  Entradas: %d  Saídas: %d  Quantidade: %d\n",
		rep.Summary.Total, rep.Summary.Entries, rep.Summary.Exits, rep.Summary.TotalQuantity)
	s.renderMovements(rep.Movements)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
