package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
)

func TestCrearProductoRegistraStockInicial(t *testing.T) {
	stockRepo := &fakeStockRepo{}
	svc := NewProductoService(newFakeProductoRepo(), stockRepo)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Critical Kush",
		Categoria:   "flores",
		PrecioGramo: dec("9.50"),
		StockGramos: dec("100.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Visible)

	require.Len(t, stockRepo.movimientos, 1)
	assert.Equal(t, "ajuste_manual", stockRepo.movimientos[0].Tipo)
	assert.True(t, stockRepo.movimientos[0].StockNuevo.Equal(dec("100.00")))
}

func TestAjustarStockNoPermiteNegativo(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductoRepo()
	stockRepo := &fakeStockRepo{}
	svc := NewProductoService(repo, stockRepo)

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre:      "Critical Kush",
		Categoria:   "flores",
		PrecioGramo: dec("9.50"),
		StockGramos: dec("10.00"),
	})
	require.NoError(t, err)

	id := mustUUID(t, resp.ID)
	_, err = svc.AjustarStock(ctx, id, dto.AjustarStockRequest{
		DeltaGramos: dec("-15.00"), Motivo: "merma",
	})
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	// Un ajuste válido sí pasa y deja rastro
	out, err := svc.AjustarStock(ctx, id, dto.AjustarStockRequest{
		DeltaGramos: dec("-4.00"), Motivo: "merma por secado",
	})
	require.NoError(t, err)
	assert.True(t, out.StockGramos.Equal(dec("6.00")))
	assert.Len(t, stockRepo.movimientos, 2)
}

func TestListOcultaElCostoParaNoAdministradores(t *testing.T) {
	ctx := context.Background()
	svc := NewProductoService(newFakeProductoRepo(), &fakeStockRepo{})

	_, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre:      "Critical Kush",
		Categoria:   "flores",
		PrecioGramo: dec("9.50"),
		CostoGramo:  dec("4.00"),
	})
	require.NoError(t, err)

	admin, err := svc.List(ctx, dto.ProductoFilter{}, true)
	require.NoError(t, err)
	require.Len(t, admin.Data, 1)
	require.NotNil(t, admin.Data[0].CostoGramo)

	dispensador, err := svc.List(ctx, dto.ProductoFilter{}, false)
	require.NoError(t, err)
	require.Len(t, dispensador.Data, 1)
	assert.Nil(t, dispensador.Data[0].CostoGramo)
}

func TestOcultarSacaElProductoDelListadoPorDefecto(t *testing.T) {
	ctx := context.Background()
	svc := NewProductoService(newFakeProductoRepo(), &fakeStockRepo{})

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre:      "Critical Kush",
		Categoria:   "flores",
		PrecioGramo: dec("9.50"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Ocultar(ctx, mustUUID(t, resp.ID)))

	visibles, err := svc.List(ctx, dto.ProductoFilter{}, false)
	require.NoError(t, err)
	assert.Empty(t, visibles.Data)

	todos, err := svc.List(ctx, dto.ProductoFilter{Visible: "all"}, false)
	require.NoError(t, err)
	assert.Len(t, todos.Data, 1)
}
