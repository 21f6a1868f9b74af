package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// fold normaliza para comparar sin mayúsculas (case folding Unicode).
// cases.Caser no es seguro para uso concurrente: se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), needle)
}

// FilterProducts proyección local por nombre o categoría. Consulta vacía = lista completa.
func FilterProducts(list []entity.Product, query string) []entity.Product {
	q := fold(query)
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		if q == "" || containsFold(p.Name, q) || containsFold(p.Category, q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterUsers proyección local por nombre o email.
func FilterUsers(list []entity.User, query string) []entity.User {
	q := fold(query)
	out := make([]entity.User, 0, len(list))
	for _, u := range list {
		if q == "" || containsFold(u.Name, q) || containsFold(u.Email, q) {
			out = append(out, u)
		}
	}
	return out
}
