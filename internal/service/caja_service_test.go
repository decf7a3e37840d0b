package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAbrirRechazaMontoNoPositivo(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()

	_, err := svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: decimal.Zero})
	assert.ErrorIs(t, err, ErrMontoInvalido)

	_, err = svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("-5")})
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestAbrirRechazaSesionDuplicada(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()

	_, err := svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("100.00")})
	require.NoError(t, err)

	_, err = svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("50.00")})
	assert.ErrorIs(t, err, ErrCajaYaAbierta)
}

func TestSaldoActualSumaIngresosYRestaEgresos(t *testing.T) {
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo)
	ctx := context.Background()

	sesion, err := svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("100.00")})
	require.NoError(t, err)
	assert.True(t, sesion.SaldoActual.Equal(dec("100.00")))

	// Venta en efectivo de 17.00 → el saldo vivo pasa a 117.00
	_, err = svc.RegistrarMovimiento(ctx, dto.MovimientoCajaRequest{
		Tipo: "ingreso", MetodoPago: "efectivo", Monto: dec("17.00"), Concepto: "Dispensación",
	})
	require.NoError(t, err)

	abierta, err := svc.SesionAbierta(ctx)
	require.NoError(t, err)
	assert.True(t, abierta.SaldoActual.Equal(dec("117.00")), "esperaba 117.00, obtuve %s", abierta.SaldoActual)

	_, err = svc.RegistrarMovimiento(ctx, dto.MovimientoCajaRequest{
		Tipo: "egreso", Monto: dec("20.00"), Concepto: "Compra de material",
	})
	require.NoError(t, err)

	sesionID := uuid.MustParse(abierta.ID)
	saldo, err := svc.SaldoActual(ctx, sesionID)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("97.00")))
}

func TestRegistrarMovimientoSinSesionAbierta(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())

	_, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo: "ingreso", Monto: dec("10.00"), Concepto: "Lo que sea",
	})
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}

func TestCerrarNuncaRechazaElDesvio(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())
	ctx := context.Background()

	_, err := svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("100.00")})
	require.NoError(t, err)

	// Se declaran 80.00 contra 100.00 esperados: cierra igualmente.
	resp, err := svc.Cerrar(ctx, dto.CerrarCajaRequest{MontoCierre: dec("80.00")})
	require.NoError(t, err)

	assert.Equal(t, "cerrada", resp.Sesion.Estado)
	assert.True(t, resp.MontoEsperado.Equal(dec("100.00")))
	assert.True(t, resp.Desvio.Equal(dec("-20.00")))
	assert.Equal(t, "critico", resp.Clasificacion)
	assert.NotEmpty(t, resp.Advertencia)

	_, err = svc.SesionAbierta(ctx)
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}

func TestCerrarClasificaElDesvio(t *testing.T) {
	cases := []struct {
		nombre        string
		montoCierre   string
		clasificacion string
	}{
		{"exacto", "100.00", "normal"},
		{"dentro del 1%", "100.90", "normal"},
		{"dentro del 5%", "103.00", "advertencia"},
		{"mas del 5%", "110.00", "critico"},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			svc := NewCajaService(newFakeCajaRepo())
			ctx := context.Background()

			_, err := svc.Abrir(ctx, uuid.New(), dto.AbrirCajaRequest{MontoApertura: dec("100.00")})
			require.NoError(t, err)

			resp, err := svc.Cerrar(ctx, dto.CerrarCajaRequest{MontoCierre: dec(tc.montoCierre)})
			require.NoError(t, err)
			assert.Equal(t, tc.clasificacion, resp.Clasificacion)
		})
	}
}

func TestCerrarSinSesionAbierta(t *testing.T) {
	svc := NewCajaService(newFakeCajaRepo())

	_, err := svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoCierre: dec("50.00")})
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
}
