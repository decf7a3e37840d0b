package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

var (
	ErrCajaYaAbierta = errors.New("Ya existe una sesión de caja abierta")
	ErrCajaNoAbierta = errors.New("No hay ninguna sesión de caja abierta")
	ErrMontoInvalido = errors.New("El monto de apertura debe ser mayor que cero")
	ErrSesionCerrada = errors.New("La sesión de caja ya está cerrada")
)

// Thresholds for classifying the close deviation. Informational only:
// a deviation of any size never blocks the close.
var (
	umbralAdvertencia = decimal.NewFromFloat(0.01) // 1%
	umbralCritico     = decimal.NewFromFloat(0.05) // 5%
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	// SesionAbierta returns the single open session with its live balance.
	SesionAbierta(ctx context.Context) (*dto.SesionCajaResponse, error)
	// SaldoActual recomputes apertura + Σingresos − Σegresos from the ledger.
	SaldoActual(ctx context.Context, sesionID uuid.UUID) (decimal.Decimal, error)
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error)
	Movimientos(ctx context.Context, sesionID uuid.UUID) ([]dto.MovimientoCajaResponse, error)
	ObtenerSesion(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error)
	ListSesiones(ctx context.Context, page, limit int) (*dto.SesionCajaListResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if !req.MontoApertura.IsPositive() {
		return nil, ErrMontoInvalido
	}

	// Guard: at most one open session. The partial unique index on estado
	// backs this up against concurrent opens.
	if existing, err := s.repo.FindAbierta(ctx); err == nil && existing != nil {
		return nil, ErrCajaYaAbierta
	}

	sesion := &model.SesionCaja{
		UsuarioID:     usuarioID,
		MontoApertura: req.MontoApertura,
		Estado:        "abierta",
		Notas:         req.Notas,
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	return s.buildSesionResponse(ctx, sesion)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// The operator declares the counted amount; the service computes the expected
// balance and the deviation. A mismatch is reported and classified, never
// rejected: the declared count is recorded as-is.

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	sesion, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, ErrCajaNoAbierta
	}

	esperado, err := s.SaldoActual(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	desvio := req.MontoCierre.Sub(esperado)
	clasificacion := clasificarDesvio(desvio, esperado)

	now := time.Now()
	montoCierre := req.MontoCierre
	sesion.Estado = "cerrada"
	sesion.MontoCierre = &montoCierre
	sesion.Desvio = &desvio
	sesion.ClosedAt = &now
	if req.Notas != nil {
		sesion.Notas = req.Notas
	}
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	resp := &dto.CierreCajaResponse{
		MontoEsperado: esperado,
		MontoCierre:   req.MontoCierre,
		Desvio:        desvio,
		Clasificacion: clasificacion,
	}
	if clasificacion != "normal" {
		resp.Advertencia = fmt.Sprintf("Desvío de %s € respecto al saldo esperado (%s €)",
			desvio.StringFixed(2), esperado.StringFixed(2))
	}

	sesionResp, err := s.buildSesionResponse(ctx, sesion)
	if err != nil {
		return nil, err
	}
	resp.Sesion = *sesionResp
	return resp, nil
}

func clasificarDesvio(desvio, esperado decimal.Decimal) string {
	if desvio.IsZero() {
		return "normal"
	}
	if esperado.IsZero() {
		return "critico"
	}
	ratio := desvio.Abs().Div(esperado.Abs())
	switch {
	case ratio.LessThanOrEqual(umbralAdvertencia):
		return "normal"
	case ratio.LessThanOrEqual(umbralCritico):
		return "advertencia"
	default:
		return "critico"
	}
}

// ── SesionAbierta / SaldoActual ───────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, ErrCajaNoAbierta
	}
	return s.buildSesionResponse(ctx, sesion)
}

func (s *cajaService) SaldoActual(ctx context.Context, sesionID uuid.UUID) (decimal.Decimal, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return decimal.Zero, errors.New("Sesión de caja no encontrada")
	}
	sums, err := s.repo.SumMovimientos(ctx, sesionID)
	if err != nil {
		return decimal.Zero, err
	}
	return sesion.MontoApertura.Add(sums.Ingresos).Sub(sums.Egresos), nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Manual ingreso/egreso against the open session. Movements are immutable;
// there is no update or delete path.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	sesion, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, ErrCajaNoAbierta
	}

	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         req.Tipo,
		Monto:        req.Monto,
		Concepto:     req.Concepto,
	}
	if req.MetodoPago != "" {
		metodo := req.MetodoPago
		mov.MetodoPago = &metodo
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	resp := movimientoCajaToResponse(mov)
	return &resp, nil
}

func (s *cajaService) Movimientos(ctx context.Context, sesionID uuid.UUID) ([]dto.MovimientoCajaResponse, error) {
	movs, err := s.repo.ListMovimientos(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, movimientoCajaToResponse(&m))
	}
	return out, nil
}

func (s *cajaService) ObtenerSesion(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("Sesión de caja no encontrada")
	}
	return s.buildSesionResponse(ctx, sesion)
}

func (s *cajaService) ListSesiones(ctx context.Context, page, limit int) (*dto.SesionCajaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	sesiones, total, err := s.repo.ListSesiones(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.SesionCajaListResponse{Total: total, Page: page, Limit: limit}
	for i := range sesiones {
		r, err := s.buildSesionResponse(ctx, &sesiones[i])
		if err != nil {
			return nil, err
		}
		resp.Data = append(resp.Data, *r)
	}
	return resp, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *cajaService) buildSesionResponse(ctx context.Context, sesion *model.SesionCaja) (*dto.SesionCajaResponse, error) {
	sums, err := s.repo.SumMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SesionCajaResponse{
		ID:            sesion.ID.String(),
		Estado:        sesion.Estado,
		MontoApertura: sesion.MontoApertura,
		SaldoActual:   sesion.MontoApertura.Add(sums.Ingresos).Sub(sums.Egresos),
		MontoCierre:   sesion.MontoCierre,
		Notas:         sesion.Notas,
		OpenedAt:      sesion.OpenedAt.Format(time.RFC3339),
	}
	if sesion.ClosedAt != nil {
		closed := sesion.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp, nil
}

func movimientoCajaToResponse(m *model.MovimientoCaja) dto.MovimientoCajaResponse {
	return dto.MovimientoCajaResponse{
		ID:         m.ID.String(),
		Tipo:       m.Tipo,
		MetodoPago: m.MetodoPago,
		Monto:      m.Monto,
		Concepto:   m.Concepto,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}
