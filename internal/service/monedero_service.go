package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

// MonederoService manages the stored-value wallet of each socio. The wallet
// is a signed append-only ledger; Socio.Saldo is its denormalized total and
// is only ever written together with a ledger append, in the same transaction.
//
// There is deliberately NO overdraft guard: a debit may push the saldo
// negative (house tab), and the resulting balance is surfaced to the operator.
type MonederoService interface {
	// Recargar tops up the wallet. The money enters the till, so an open caja
	// session is required; the deposit and the caja ingreso commit atomically.
	Recargar(ctx context.Context, socioID, usuarioID uuid.UUID, req dto.RecargarMonederoRequest) (*dto.MonederoResponse, error)
	// DebitarTx appends a retiro and adjusts the saldo inside the caller's
	// transaction. Used by DispensarioService for monedero-paid sales.
	DebitarTx(tx *gorm.DB, socioID, usuarioID uuid.UUID, monto decimal.Decimal, concepto string, refID *uuid.UUID) error
	// RestaurarTx appends a compensating deposito inside the caller's
	// transaction. Used when an annulment is configured to refund the wallet.
	RestaurarTx(tx *gorm.DB, socioID, usuarioID uuid.UUID, monto decimal.Decimal, concepto string, refID *uuid.UUID) error
	Saldo(ctx context.Context, socioID uuid.UUID) (*dto.MonederoResponse, error)
	// SaldoCalculado recomputes the balance from the ledger, bypassing the
	// denormalized column. Used by the reconciliation worker.
	SaldoCalculado(ctx context.Context, socioID uuid.UUID) (decimal.Decimal, error)
	Movimientos(ctx context.Context, socioID uuid.UUID, page, limit int) (*dto.MovimientosMonederoListResponse, error)
}

type monederoService struct {
	repo      repository.MonederoRepository
	socioRepo repository.SocioRepository
	cajaRepo  repository.CajaRepository
}

func NewMonederoService(
	repo repository.MonederoRepository,
	socioRepo repository.SocioRepository,
	cajaRepo repository.CajaRepository,
) MonederoService {
	return &monederoService{repo: repo, socioRepo: socioRepo, cajaRepo: cajaRepo}
}

// ── Recargar ─────────────────────────────────────────────────────────────────

func (s *monederoService) Recargar(ctx context.Context, socioID, usuarioID uuid.UUID, req dto.RecargarMonederoRequest) (*dto.MonederoResponse, error) {
	socio, err := s.socioRepo.FindByID(ctx, socioID)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}

	sesion, err := s.cajaRepo.FindAbierta(ctx)
	if err != nil {
		return nil, ErrCajaNoAbierta
	}

	concepto := req.Concepto
	if concepto == "" {
		concepto = "Recarga monedero " + socio.Codigo
	}

	var movID uuid.UUID
	txErr := runTx(ctx, s.socioRepo.DB(), func(tx *gorm.DB) error {
		mov := &model.MovimientoMonedero{
			SocioID:   socioID,
			Monto:     req.Monto,
			Tipo:      "deposito",
			Concepto:  concepto,
			UsuarioID: usuarioID,
		}
		if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
			return err
		}
		movID = mov.ID

		if err := s.socioRepo.AjustarSaldoTx(tx, socioID, req.Monto); err != nil {
			return err
		}

		metodo := req.MetodoPago
		cajaMov := &model.MovimientoCaja{
			SesionCajaID: sesion.ID,
			Tipo:         "ingreso",
			MetodoPago:   &metodo,
			Monto:        req.Monto,
			Concepto:     concepto,
			ReferenciaID: &movID,
		}
		return s.cajaRepo.CreateMovimientoTx(tx, cajaMov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.MonederoResponse{
		SocioID: socioID.String(),
		Saldo:   socio.Saldo.Add(req.Monto),
	}, nil
}

// ── DebitarTx / RestaurarTx ──────────────────────────────────────────────────

func (s *monederoService) DebitarTx(tx *gorm.DB, socioID, usuarioID uuid.UUID, monto decimal.Decimal, concepto string, refID *uuid.UUID) error {
	mov := &model.MovimientoMonedero{
		SocioID:      socioID,
		Monto:        monto.Neg(),
		Tipo:         "retiro",
		Concepto:     concepto,
		UsuarioID:    usuarioID,
		ReferenciaID: refID,
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return err
	}
	return s.socioRepo.AjustarSaldoTx(tx, socioID, monto.Neg())
}

func (s *monederoService) RestaurarTx(tx *gorm.DB, socioID, usuarioID uuid.UUID, monto decimal.Decimal, concepto string, refID *uuid.UUID) error {
	mov := &model.MovimientoMonedero{
		SocioID:      socioID,
		Monto:        monto,
		Tipo:         "deposito",
		Concepto:     concepto,
		UsuarioID:    usuarioID,
		ReferenciaID: refID,
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return err
	}
	return s.socioRepo.AjustarSaldoTx(tx, socioID, monto)
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *monederoService) Saldo(ctx context.Context, socioID uuid.UUID) (*dto.MonederoResponse, error) {
	socio, err := s.socioRepo.FindByID(ctx, socioID)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	return &dto.MonederoResponse{SocioID: socioID.String(), Saldo: socio.Saldo}, nil
}

func (s *monederoService) SaldoCalculado(ctx context.Context, socioID uuid.UUID) (decimal.Decimal, error) {
	return s.repo.SumBySocio(ctx, socioID)
}

func (s *monederoService) Movimientos(ctx context.Context, socioID uuid.UUID, page, limit int) (*dto.MovimientosMonederoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	movs, total, err := s.repo.ListBySocio(ctx, socioID, page, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.MovimientosMonederoListResponse{Total: total, Page: page, Limit: limit}
	for _, m := range movs {
		resp.Data = append(resp.Data, dto.MovimientoMonederoResponse{
			ID:        m.ID.String(),
			Tipo:      m.Tipo,
			Monto:     m.Monto,
			Concepto:  m.Concepto,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
