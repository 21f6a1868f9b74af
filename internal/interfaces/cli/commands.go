package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// pageCommand comandos propios de la vista activa; false si no aplica.
func (s *Shell) pageCommand(ctx context.Context, cmd, rest string, args []string) bool {
	switch {
	case s.products != nil:
		return s.productsCommand(ctx, cmd, rest, args)
	case s.movements != nil:
		return s.movementsCommand(ctx, cmd, args)
	case s.users != nil:
		return s.usersCommand(ctx, cmd, rest, args)
	case s.reports != nil:
		return s.reportsCommand(ctx, cmd, args)
	}
	return false
}

func (s *Shell) productsCommand(ctx context.Context, cmd, rest string, args []string) bool {
	c := s.products
	switch cmd {
	case "buscar":
		c.Search(rest)
		s.render()
	case "novo":
		form, ok := s.productForm(rest)
		if !ok {
			return true
		}
		if _, err := c.Create(ctx, form); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "editar":
		id, fields, _ := strings.Cut(rest, " ")
		form, ok := s.productForm(fields)
		if !ok {
			return true
		}
		if _, err := c.Update(ctx, id, form); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "excluir":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "uso: excluir <id>")
			return true
		}
		if err := c.Delete(ctx, args[0]); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "entrada", "saida":
		form, ok := s.movementForm(cmd, args)
		if !ok {
			return true
		}
		if _, err := c.QuickMovement(ctx, form); err != nil {
			s.printErr(err)
			return true
		}
		c.Wait()
		s.render()
	default:
		return false
	}
	return true
}

func (s *Shell) movementsCommand(ctx context.Context, cmd string, args []string) bool {
	c := s.movements
	switch cmd {
	case "entrada", "saida":
		form, ok := s.movementForm(cmd, args)
		if !ok {
			return true
		}
		if _, err := c.Record(ctx, form); err != nil {
			s.printErr(err)
			return true
		}
		c.Wait()
		s.render()
	case "filtro":
		filter, ok := s.filter(args)
		if !ok {
			return true
		}
		if err := c.ApplyFilter(ctx, filter); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "limpar":
		if err := c.ClearFilter(ctx); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "recentes":
		c.SetOnlyRecent(len(args) == 0 || args[0] != "off")
		s.render()
	default:
		return false
	}
	return true
}

func (s *Shell) usersCommand(ctx context.Context, cmd, rest string, args []string) bool {
	c := s.users
	switch cmd {
	case "buscar":
		c.Search(rest)
		s.render()
	case "novo":
		form, ok := s.userForm(rest)
		if !ok {
			return true
		}
		if _, err := c.Create(ctx, form); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "editar":
		id, fields, _ := strings.Cut(rest, " ")
		form, ok := s.userForm(fields)
		if !ok {
			return true
		}
		if _, err := c.Update(ctx, id, form); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	case "excluir":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "uso: excluir <id>")
			return true
		}
		if err := c.Delete(ctx, args[0]); err != nil {
			s.printErr(err)
			return true
		}
		s.render()
	default:
		return false
	}
	return true
}

func (s *Shell) reportsCommand(ctx context.Context, cmd string, args []string) bool {
	c := s.reports
	switch cmd {
	case "movimentos":
		filter, ok := s.filter(args)
		if !ok {
			return true
		}
		rep, err := c.SearchMovements(ctx, filter)
		if err != nil {
			s.printErr(err)
			return true
		}
		s.renderMovementReport(rep)
	case "historico":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "uso: historico <produto>")
			return true
		}
		list, err := c.ProductMovements(ctx, args[0])
		if err != nil {
			s.printErr(err)
			return true
		}
		s.renderMovements(list)
	case "gerar":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "uso: gerar <estoque|movimentacoes> <pdf|excel>")
			return true
		}
		u, err := c.Generate(ctx, args[0], args[1])
		if err != nil {
			s.printErr(err)
			return true
		}
		fmt.Fprintf(s.out, "Arquivo: %s\n", u)
	case "baixar":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "uso: baixar <arquivo>")
			return true
		}
		u, err := c.DownloadURL(ctx, args[0])
		if err != nil {
			s.printErr(err)
			return true
		}
		fmt.Fprintf(s.out, "Download: %s\n", u)
	default:
		return false
	}
	return true
}

// ── Parsers ──

func splitFields(s string) []string {
	parts := strings.Split(s, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (s *Shell) productForm(raw string) (view.ProductForm, bool) {
	f := splitFields(raw)
	if len(f) != 3 {
		fmt.Fprintln(s.out, "uso: <nome>;<categoria>;<preço>")
		return view.ProductForm{}, false
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(f[2], ",", "."))
	if err != nil {
		fmt.Fprintf(s.out, "preço inválido: %s\n", f[2])
		return view.ProductForm{}, false
	}
	return view.ProductForm{Name: f[0], Category: f[1], Price: price}, true
}

func (s *Shell) userForm(raw string) (view.UserForm, bool) {
	f := splitFields(raw)
	if len(f) != 4 {
		fmt.Fprintln(s.out, "uso: <nome>;<email>;<senha>;<administrador|funcionario>")
		return view.UserForm{}, false
	}
	return view.UserForm{Name: f[0], Email: f[1], Password: f[2], Role: entity.Role(f[3])}, true
}

func (s *Shell) movementForm(cmd string, args []string) (view.MovementForm, bool) {
	if len(args) != 2 {
		fmt.Fprintf(s.out, "uso: %s <produto> <quantidade>\n", cmd)
		return view.MovementForm{}, false
	}
	qty, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "quantidade inválida: %s\n", args[1])
		return view.MovementForm{}, false
	}
	return view.MovementForm{ProductID: args[0], Type: entity.MovementType(cmd), Quantity: qty}, true
}

func (s *Shell) filter(args []string) (dto.MovementFilter, bool) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(s.out, "uso: <inicio AAAA-MM-DD|-> <fim AAAA-MM-DD|-> [produto]")
		return dto.MovementFilter{}, false
	}
	f := dto.MovementFilter{Start: dash(args[0]), End: dash(args[1])}
	if len(args) == 3 {
		f.ProductID = args[2]
	}
	return f, true
}

// dash "-" = sin límite.
func dash(s string) string {
	if s == "-" {
		return ""
	}
	return s
}
