package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/config"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

type dispensarioFixture struct {
	svc          DispensarioService
	cajaSvc      CajaService
	monederoSvc  MonederoService
	socioRepo    *fakeSocioRepo
	productoRepo *fakeProductoRepo
	cajaRepo     *fakeCajaRepo
	monederoRepo *fakeMonederoRepo
	stockRepo    *fakeStockRepo
	dispRepo     *fakeDispensacionRepo
	socio        *model.Socio
	producto     *model.Producto
}

func newDispensarioFixture(t *testing.T, cfg *config.Config) *dispensarioFixture {
	t.Helper()
	f := &dispensarioFixture{
		socioRepo:    newFakeSocioRepo(),
		productoRepo: newFakeProductoRepo(),
		cajaRepo:     newFakeCajaRepo(),
		monederoRepo: &fakeMonederoRepo{},
		stockRepo:    &fakeStockRepo{},
		dispRepo:     newFakeDispensacionRepo(),
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	f.cajaSvc = NewCajaService(f.cajaRepo)
	f.monederoSvc = NewMonederoService(f.monederoRepo, f.socioRepo, f.cajaRepo)
	f.svc = NewDispensarioService(f.dispRepo, f.socioRepo, f.productoRepo, f.cajaRepo, f.stockRepo, f.monederoSvc, cfg)

	f.socio = nuevoSocioActivo(t, f.socioRepo, decimal.Zero)
	f.producto = &model.Producto{
		Nombre:      "Amnesia Haze",
		Categoria:   "flores",
		PrecioGramo: dec("11.00"),
		StockGramos: dec("50.00"),
		Visible:     true,
	}
	require.NoError(t, f.productoRepo.Create(context.Background(), f.producto))
	return f
}

func (f *dispensarioFixture) abrirCaja(t *testing.T, monto string) {
	t.Helper()
	_, err := f.cajaSvc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec(monto)})
	require.NoError(t, err)
}

func TestSugerenciaRedondeaADosDecimales(t *testing.T) {
	f := newDispensarioFixture(t, nil)

	resp, err := f.svc.CalcularSugerencia(context.Background(), dto.SugerenciaRequest{
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
	})
	require.NoError(t, err)
	// 17.00 / 11.00 = 1.5454… → 1.55
	assert.True(t, resp.GramosCalculados.Equal(dec("1.55")), "obtuve %s", resp.GramosCalculados)
}

func TestSugerenciaRechazaProductoOculto(t *testing.T) {
	f := newDispensarioFixture(t, nil)
	require.NoError(t, f.productoRepo.Ocultar(context.Background(), f.producto.ID))

	_, err := f.svc.CalcularSugerencia(context.Background(), dto.SugerenciaRequest{
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("10.00"),
	})
	assert.ErrorIs(t, err, ErrProductoNoVisible)
}

func TestDispensarEnEfectivo(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	// El socio pide 17.00 €; la báscula marca 1.52 g en vez de los 1.55
	// calculados. Se cobra el importe acordado, no el peso.
	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.52"),
		MetodoPago:    "efectivo",
	})
	require.NoError(t, err)
	assert.True(t, resp.Precio.Equal(dec("17.00")))
	assert.True(t, resp.Cantidad.Equal(dec("1.52")))
	assert.Contains(t, resp.Notas, "deseado=17.00")
	assert.Contains(t, resp.Notas, "real=1.52")

	// Caja: 100 + 17 = 117
	abierta, err := f.cajaSvc.SesionAbierta(ctx)
	require.NoError(t, err)
	assert.True(t, abierta.SaldoActual.Equal(dec("117.00")), "esperaba 117.00, obtuve %s", abierta.SaldoActual)

	// Stock: 50 − 1.52 = 48.48, con su movimiento de auditoría
	p, err := f.productoRepo.FindByID(ctx, f.producto.ID)
	require.NoError(t, err)
	assert.True(t, p.StockGramos.Equal(dec("48.48")))

	require.Len(t, f.stockRepo.movimientos, 1)
	assert.Equal(t, "dispensacion", f.stockRepo.movimientos[0].Tipo)
	assert.True(t, f.stockRepo.movimientos[0].CantidadGramos.Equal(dec("-1.52")))
}

func TestDispensarRequiereCajaAbierta(t *testing.T) {
	f := newDispensarioFixture(t, nil)

	_, err := f.svc.Dispensar(context.Background(), uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("10.00"),
		GramosReales:  dec("1.00"),
		MetodoPago:    "efectivo",
	})
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}

func TestDispensarRechazaSocioNoActivo(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	f.socio.Estado = "pendiente"
	require.NoError(t, f.socioRepo.Update(ctx, f.socio))

	_, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("10.00"),
		GramosReales:  dec("1.00"),
		MetodoPago:    "efectivo",
	})
	assert.ErrorIs(t, err, ErrSocioNoActivo)
}

func TestDispensarRechazaStockInsuficiente(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	_, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("600.00"),
		GramosReales:  dec("55.00"), // stock es 50.00
		MetodoPago:    "efectivo",
	})
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	// Nada se ha tocado
	p, err := f.productoRepo.FindByID(ctx, f.producto.ID)
	require.NoError(t, err)
	assert.True(t, p.StockGramos.Equal(dec("50.00")))
	assert.Empty(t, f.stockRepo.movimientos)
}

func TestDispensarConMonedero(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	f.socio.Saldo = dec("5.00")
	require.NoError(t, f.socioRepo.Update(ctx, f.socio))

	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.55"),
		MetodoPago:    "monedero",
	})
	require.NoError(t, err)

	// Sin guardia de descubierto: 5.00 − 17.00 = −12.00
	require.NotNil(t, resp.SaldoSocio)
	assert.True(t, resp.SaldoSocio.Equal(dec("-12.00")))

	socio, err := f.socioRepo.FindByID(ctx, f.socio.ID)
	require.NoError(t, err)
	assert.True(t, socio.Saldo.Equal(dec("-12.00")))

	// El cobro con monedero NO genera movimiento de caja
	abierta, err := f.cajaSvc.SesionAbierta(ctx)
	require.NoError(t, err)
	assert.True(t, abierta.SaldoActual.Equal(dec("100.00")))
}

func TestAnularVentaEnEfectivo(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.52"),
		MetodoPago:    "efectivo",
	})
	require.NoError(t, err)

	dispID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Anular(ctx, dispID, uuid.New(), "peso erróneo"))

	// Stock restaurado con movimiento de restauración
	p, err := f.productoRepo.FindByID(ctx, f.producto.ID)
	require.NoError(t, err)
	assert.True(t, p.StockGramos.Equal(dec("50.00")))
	require.Len(t, f.stockRepo.movimientos, 2)
	assert.Equal(t, "restauracion_anulacion", f.stockRepo.movimientos[1].Tipo)

	// Egreso compensatorio: la caja vuelve a 100, con el historial intacto
	abierta, err := f.cajaSvc.SesionAbierta(ctx)
	require.NoError(t, err)
	assert.True(t, abierta.SaldoActual.Equal(dec("100.00")))

	movs, err := f.cajaSvc.Movimientos(ctx, uuid.MustParse(abierta.ID))
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "ingreso", movs[0].Tipo)
	assert.Equal(t, "egreso", movs[1].Tipo)

	// El registro de la venta desaparece
	_, err = f.svc.Obtener(ctx, dispID)
	assert.Error(t, err)
}

func TestAnularEfectivoRequiereCajaAbierta(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.52"),
		MetodoPago:    "efectivo",
	})
	require.NoError(t, err)

	_, err = f.cajaSvc.Cerrar(ctx, dto.CerrarCajaRequest{MontoCierre: dec("117.00")})
	require.NoError(t, err)

	err = f.svc.Anular(ctx, uuid.MustParse(resp.ID), uuid.New(), "")
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}

func TestAnularMonederoNoDevuelveSaldoPorDefecto(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	f.socio.Saldo = dec("30.00")
	require.NoError(t, f.socioRepo.Update(ctx, f.socio))

	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.55"),
		MetodoPago:    "monedero",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Anular(ctx, uuid.MustParse(resp.ID), uuid.New(), ""))

	// Stock vuelve, pero el débito del monedero se mantiene
	p, err := f.productoRepo.FindByID(ctx, f.producto.ID)
	require.NoError(t, err)
	assert.True(t, p.StockGramos.Equal(dec("50.00")))

	socio, err := f.socioRepo.FindByID(ctx, f.socio.ID)
	require.NoError(t, err)
	assert.True(t, socio.Saldo.Equal(dec("13.00")), "esperaba 13.00, obtuve %s", socio.Saldo)
}

func TestAnularMonederoDevuelveSaldoConFlag(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, &config.Config{WalletReversalOnAnnul: true})
	f.abrirCaja(t, "100.00")

	f.socio.Saldo = dec("30.00")
	require.NoError(t, f.socioRepo.Update(ctx, f.socio))

	resp, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
		SocioID:       f.socio.ID.String(),
		ProductoID:    f.producto.ID.String(),
		PrecioDeseado: dec("17.00"),
		GramosReales:  dec("1.55"),
		MetodoPago:    "monedero",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Anular(ctx, uuid.MustParse(resp.ID), uuid.New(), ""))

	socio, err := f.socioRepo.FindByID(ctx, f.socio.ID)
	require.NoError(t, err)
	assert.True(t, socio.Saldo.Equal(dec("30.00")))

	// El ledger conserva débito y depósito compensatorio
	movs, err := f.monederoSvc.Movimientos(ctx, f.socio.ID, 1, 50)
	require.NoError(t, err)
	assert.Len(t, movs.Data, 2)
}

func TestListFiltraPorSocio(t *testing.T) {
	ctx := context.Background()
	f := newDispensarioFixture(t, nil)
	f.abrirCaja(t, "100.00")

	otro := &model.Socio{Codigo: "SOC-0002", Nombre: "Luis Pérez", DNI: "87654321B", FechaAlta: time.Now(), Estado: "activo"}
	require.NoError(t, f.socioRepo.Create(ctx, otro))

	for _, socioID := range []string{f.socio.ID.String(), otro.ID.String()} {
		_, err := f.svc.Dispensar(ctx, uuid.New(), dto.DispensarRequest{
			SocioID:       socioID,
			ProductoID:    f.producto.ID.String(),
			PrecioDeseado: dec("10.00"),
			GramosReales:  dec("0.91"),
			MetodoPago:    "efectivo",
		})
		require.NoError(t, err)
	}

	lista, err := f.svc.List(ctx, dto.DispensacionFilter{SocioID: f.socio.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), lista.Total)
}
