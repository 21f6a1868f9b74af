package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

func TestFilterProducts_NombreOCategoria(t *testing.T) {
	list := []entity.Product{
		{ID: "1", Name: "Martelo", Category: "Ferramentas"},
		{ID: "2", Name: "Straße", Category: "Mapas"},
		{ID: "3", Name: "Cola", Category: "Papelaria"},
	}
	assert.Len(t, view.FilterProducts(list, "ferr"), 1)
	assert.Len(t, view.FilterProducts(list, "STRASSE"), 1)
	assert.Len(t, view.FilterProducts(list, "  "), 3)
	assert.Empty(t, view.FilterProducts(list, "xyz"))
}

func TestFilterUsers_NombreOEmail(t *testing.T) {
	list := []entity.User{
		{ID: "1", Name: "Ana", Email: "ana@local.com.br"},
		{ID: "2", Name: "Bruno", Email: "bruno@empresa.com"},
	}
	assert.Len(t, view.FilterUsers(list, "EMPRESA"), 1)
	assert.Len(t, view.FilterUsers(list, "an"), 1)
	assert.Len(t, view.FilterUsers(list, ""), 2)
}
