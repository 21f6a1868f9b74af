package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devostorange/internal/application/view"
)

func TestToaster_MasRecientePrimero(t *testing.T) {
	toaster := view.NewToaster(time.Hour)
	toaster.Success("uno")
	toaster.Error("dos")
	id := toaster.Info("tres")

	list := toaster.List()
	require.Len(t, list, 3)
	assert.Equal(t, "tres", list[0].Message)
	assert.Equal(t, view.ToastInfo, list[0].Kind)
	assert.Equal(t, "uno", list[2].Message)

	toaster.Dismiss(id)
	toaster.Dismiss("desconocido")
	assert.Len(t, toaster.List(), 2)
}

func TestToaster_AutoCierre(t *testing.T) {
	toaster := view.NewToaster(20 * time.Millisecond)
	toaster.Success("guardado")
	require.Len(t, toaster.List(), 1)

	assert.Eventually(t, func() bool { return len(toaster.List()) == 0 }, time.Second, 5*time.Millisecond)
}
