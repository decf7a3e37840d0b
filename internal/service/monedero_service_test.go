package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

func nuevoSocioActivo(t *testing.T, repo *fakeSocioRepo, saldo decimal.Decimal) *model.Socio {
	t.Helper()
	socio := &model.Socio{
		Codigo:    "SOC-0001",
		Nombre:    "Ana García",
		DNI:       "12345678A",
		FechaAlta: time.Now(),
		Estado:    "activo",
		Saldo:     saldo,
	}
	require.NoError(t, repo.Create(context.Background(), socio))
	return socio
}

func TestRecargarRequiereCajaAbierta(t *testing.T) {
	socioRepo := newFakeSocioRepo()
	socio := nuevoSocioActivo(t, socioRepo, decimal.Zero)
	svc := NewMonederoService(&fakeMonederoRepo{}, socioRepo, newFakeCajaRepo())

	_, err := svc.Recargar(context.Background(), socio.ID, uuid.New(), dto.RecargarMonederoRequest{
		Monto: dec("25.00"), MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}

func TestRecargarActualizaSaldoLedgerYCaja(t *testing.T) {
	ctx := context.Background()
	socioRepo := newFakeSocioRepo()
	monederoRepo := &fakeMonederoRepo{}
	cajaRepo := newFakeCajaRepo()
	socio := nuevoSocioActivo(t, socioRepo, decimal.Zero)

	cajaSvc := NewCajaService(cajaRepo)
	_, err := cajaSvc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("100.00")})
	require.NoError(t, err)

	svc := NewMonederoService(monederoRepo, socioRepo, cajaRepo)
	resp, err := svc.Recargar(ctx, socio.ID, uuid.New(), dto.RecargarMonederoRequest{
		Monto: dec("25.00"), MetodoPago: "bizum",
	})
	require.NoError(t, err)
	assert.True(t, resp.Saldo.Equal(dec("25.00")))

	// Columna denormalizada y ledger coinciden
	actual, err := svc.Saldo(ctx, socio.ID)
	require.NoError(t, err)
	assert.True(t, actual.Saldo.Equal(dec("25.00")))

	calculado, err := svc.SaldoCalculado(ctx, socio.ID)
	require.NoError(t, err)
	assert.True(t, calculado.Equal(dec("25.00")))

	// La recarga entra en la caja como ingreso con su método de pago
	abierta, err := cajaSvc.SesionAbierta(ctx)
	require.NoError(t, err)
	assert.True(t, abierta.SaldoActual.Equal(dec("125.00")))

	movs, err := cajaSvc.Movimientos(ctx, uuid.MustParse(abierta.ID))
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "ingreso", movs[0].Tipo)
	require.NotNil(t, movs[0].MetodoPago)
	assert.Equal(t, "bizum", *movs[0].MetodoPago)
}

func TestDebitarPermiteSaldoNegativo(t *testing.T) {
	ctx := context.Background()
	socioRepo := newFakeSocioRepo()
	monederoRepo := &fakeMonederoRepo{}
	socio := nuevoSocioActivo(t, socioRepo, dec("5.00"))

	svc := NewMonederoService(monederoRepo, socioRepo, newFakeCajaRepo())

	// Débito de 17.00 con solo 5.00 de saldo: se admite y queda en −12.00
	err := svc.DebitarTx(nil, socio.ID, uuid.New(), dec("17.00"), "Dispensación", nil)
	require.NoError(t, err)

	actual, err := svc.Saldo(ctx, socio.ID)
	require.NoError(t, err)
	assert.True(t, actual.Saldo.Equal(dec("-12.00")), "esperaba -12.00, obtuve %s", actual.Saldo)

	calculado, err := svc.SaldoCalculado(ctx, socio.ID)
	require.NoError(t, err)
	assert.True(t, calculado.Equal(dec("-12.00")))
}

func TestRestaurarCompensaUnDebito(t *testing.T) {
	ctx := context.Background()
	socioRepo := newFakeSocioRepo()
	monederoRepo := &fakeMonederoRepo{}
	socio := nuevoSocioActivo(t, socioRepo, dec("50.00"))

	svc := NewMonederoService(monederoRepo, socioRepo, newFakeCajaRepo())
	usuario := uuid.New()

	require.NoError(t, svc.DebitarTx(nil, socio.ID, usuario, dec("30.00"), "Dispensación", nil))
	require.NoError(t, svc.RestaurarTx(nil, socio.ID, usuario, dec("30.00"), "Anulación", nil))

	actual, err := svc.Saldo(ctx, socio.ID)
	require.NoError(t, err)
	assert.True(t, actual.Saldo.Equal(dec("50.00")))

	// Ambas operaciones quedan en el ledger: nada se borra
	movs, err := svc.Movimientos(ctx, socio.ID, 1, 50)
	require.NoError(t, err)
	assert.Len(t, movs.Data, 2)
}
