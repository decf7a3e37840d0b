package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/config"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

var (
	ErrStockInsuficiente = errors.New("Stock insuficiente para la cantidad solicitada")
	ErrSocioNoActivo     = errors.New("El socio no está activo")
	ErrProductoNoVisible = errors.New("El producto no está disponible")
)

type DispensarioService interface {
	// CalcularSugerencia converts a desired spend into a weight to weigh out.
	CalcularSugerencia(ctx context.Context, req dto.SugerenciaRequest) (*dto.SugerenciaResponse, error)
	Dispensar(ctx context.Context, usuarioID uuid.UUID, req dto.DispensarRequest) (*dto.DispensacionResponse, error)
	// Anular reverses a dispensación: restores stock and compensates the
	// payment, then removes the sale record.
	Anular(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.DispensacionResponse, error)
	List(ctx context.Context, filter dto.DispensacionFilter) (*dto.DispensacionListResponse, error)
}

type dispensarioService struct {
	repo         repository.DispensacionRepository
	socioRepo    repository.SocioRepository
	productoRepo repository.ProductoRepository
	cajaRepo     repository.CajaRepository
	stockRepo    repository.MovimientoStockRepository
	monedero     MonederoService
	cfg          *config.Config
}

func NewDispensarioService(
	repo repository.DispensacionRepository,
	socioRepo repository.SocioRepository,
	productoRepo repository.ProductoRepository,
	cajaRepo repository.CajaRepository,
	stockRepo repository.MovimientoStockRepository,
	monedero MonederoService,
	cfg *config.Config,
) DispensarioService {
	return &dispensarioService{
		repo:         repo,
		socioRepo:    socioRepo,
		productoRepo: productoRepo,
		cajaRepo:     cajaRepo,
		stockRepo:    stockRepo,
		monedero:     monedero,
		cfg:          cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CalcularSugerencia ───────────────────────────────────────────────────────

func (s *dispensarioService) CalcularSugerencia(ctx context.Context, req dto.SugerenciaRequest) (*dto.SugerenciaResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	if !p.Visible {
		return nil, ErrProductoNoVisible
	}
	if !p.PrecioGramo.IsPositive() {
		return nil, errors.New("El producto no tiene precio por gramo")
	}

	return &dto.SugerenciaResponse{
		ProductoID:       p.ID.String(),
		PrecioDeseado:    req.PrecioDeseado,
		PrecioGramo:      p.PrecioGramo,
		GramosCalculados: req.PrecioDeseado.DivRound(p.PrecioGramo, 2),
	}, nil
}

// ── Dispensar ────────────────────────────────────────────────────────────────
// Registers a sale as one atomic transaction:
//   1. Pre-flight: open caja, socio activo, producto visible, stock suficiente
//   2. BEGIN TX: charge (caja ingreso or monedero debit), create dispensación,
//      decrement stock, record stock movement
//   3. COMMIT
//
// Precio is the amount agreed BEFORE weighing; it is charged as-is and never
// recomputed from GramosReales. The suggested vs real weight is kept in Notas
// for audit.

func (s *dispensarioService) Dispensar(ctx context.Context, usuarioID uuid.UUID, req dto.DispensarRequest) (*dto.DispensacionResponse, error) {
	socioID, err := uuid.Parse(req.SocioID)
	if err != nil {
		return nil, fmt.Errorf("socio_id inválido: %w", err)
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}

	// 1. Pre-flight checks (outside TX)
	sesion, err := s.cajaRepo.FindAbierta(ctx)
	if err != nil {
		return nil, ErrCajaNoAbierta
	}

	socio, err := s.socioRepo.FindByID(ctx, socioID)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	if socio.Estado != "activo" {
		return nil, ErrSocioNoActivo
	}

	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	if !producto.Visible {
		return nil, ErrProductoNoVisible
	}
	if producto.StockGramos.LessThan(req.GramosReales) {
		return nil, ErrStockInsuficiente
	}

	gramosCalculados := req.PrecioDeseado.DivRound(producto.PrecioGramo, 2)
	notas := fmt.Sprintf("deseado=%s € calculado=%s g real=%s g",
		req.PrecioDeseado.StringFixed(2), gramosCalculados.StringFixed(2), req.GramosReales.StringFixed(2))

	// 2. ACID transaction
	var disp model.Dispensacion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		disp = model.Dispensacion{
			SocioID:    socioID,
			ProductoID: productoID,
			Cantidad:   req.GramosReales,
			Precio:     req.PrecioDeseado,
			MetodoPago: req.MetodoPago,
			UsuarioID:  usuarioID,
			Notas:      notas,
		}
		if err := s.repo.CreateTx(tx, &disp); err != nil {
			return err
		}

		// Charge. Monedero sales never touch the caja ledger: no cash moved.
		switch req.MetodoPago {
		case "monedero":
			concepto := fmt.Sprintf("Dispensación %s %sg", producto.Nombre, req.GramosReales.StringFixed(2))
			if err := s.monedero.DebitarTx(tx, socioID, usuarioID, req.PrecioDeseado, concepto, &disp.ID); err != nil {
				return err
			}
		default:
			metodo := req.MetodoPago
			mov := &model.MovimientoCaja{
				SesionCajaID: sesion.ID,
				Tipo:         "ingreso",
				MetodoPago:   &metodo,
				Monto:        req.PrecioDeseado,
				Concepto:     fmt.Sprintf("Dispensación %s %sg", producto.Nombre, req.GramosReales.StringFixed(2)),
				ReferenciaID: &disp.ID,
			}
			if err := s.cajaRepo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}

		// Decrement stock and record the movement.
		if err := s.productoRepo.AjustarStockTx(tx, productoID, req.GramosReales.Neg()); err != nil {
			return err
		}
		stockMov := &model.MovimientoStock{
			ProductoID:     productoID,
			Tipo:           "dispensacion",
			CantidadGramos: req.GramosReales.Neg(),
			StockAnterior:  producto.StockGramos,
			StockNuevo:     producto.StockGramos.Sub(req.GramosReales),
			Motivo:         fmt.Sprintf("Dispensación socio %s", socio.Codigo),
			ReferenciaID:   &disp.ID,
		}
		return s.stockRepo.CreateTx(tx, stockMov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := dispensacionToResponse(&disp)
	resp.Socio = socio.Nombre
	resp.Producto = producto.Nombre
	if req.MetodoPago == "monedero" {
		saldo := socio.Saldo.Sub(req.PrecioDeseado)
		resp.SaldoSocio = &saldo
	}
	return resp, nil
}

// ── Anular ───────────────────────────────────────────────────────────────────
// Reversal is compensation, not erasure of history:
//   - stock comes back with a restauracion_anulacion movement
//   - efectivo/bizum sales get a compensating egreso in the CURRENT open
//     session (the original one may already be closed)
//   - monedero sales restore the wallet only when WALLET_REVERSAL_ON_ANNUL
//     is set; the historic behavior keeps the debit

func (s *dispensarioService) Anular(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error {
	disp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("Dispensación no encontrada")
	}

	producto, err := s.productoRepo.FindByID(ctx, disp.ProductoID)
	if err != nil {
		return errors.New("Producto no encontrado")
	}

	// Cash compensations need somewhere to land.
	var sesion *model.SesionCaja
	if disp.MetodoPago != "monedero" {
		sesion, err = s.cajaRepo.FindAbierta(ctx)
		if err != nil {
			return ErrCajaNoAbierta
		}
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Restore stock
		if err := s.productoRepo.AjustarStockTx(tx, disp.ProductoID, disp.Cantidad); err != nil {
			return err
		}
		refID := disp.ID
		stockMov := &model.MovimientoStock{
			ProductoID:     disp.ProductoID,
			Tipo:           "restauracion_anulacion",
			CantidadGramos: disp.Cantidad,
			StockAnterior:  producto.StockGramos,
			StockNuevo:     producto.StockGramos.Add(disp.Cantidad),
			Motivo:         motivo,
			ReferenciaID:   &refID,
		}
		if err := s.stockRepo.CreateTx(tx, stockMov); err != nil {
			return err
		}

		// Compensate the payment
		concepto := fmt.Sprintf("Anulación dispensación %s", disp.ID)
		if motivo != "" {
			concepto = concepto + ": " + motivo
		}
		switch disp.MetodoPago {
		case "monedero":
			if s.cfg != nil && s.cfg.WalletReversalOnAnnul {
				if err := s.monedero.RestaurarTx(tx, disp.SocioID, usuarioID, disp.Precio, concepto, &refID); err != nil {
					return err
				}
			}
		default:
			metodo := disp.MetodoPago
			mov := &model.MovimientoCaja{
				SesionCajaID: sesion.ID,
				Tipo:         "egreso",
				MetodoPago:   &metodo,
				Monto:        disp.Precio,
				Concepto:     concepto,
				ReferenciaID: &refID,
			}
			if err := s.cajaRepo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}

		return s.repo.DeleteTx(tx, disp.ID)
	})
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *dispensarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.DispensacionResponse, error) {
	disp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Dispensación no encontrada")
	}
	resp := dispensacionToResponse(disp)
	return resp, nil
}

func (s *dispensarioService) List(ctx context.Context, filter dto.DispensacionFilter) (*dto.DispensacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	dispensaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.DispensacionListResponse{Total: total, Page: filter.Page, Limit: filter.Limit}
	for i := range dispensaciones {
		resp.Data = append(resp.Data, *dispensacionToResponse(&dispensaciones[i]))
	}
	return resp, nil
}

func dispensacionToResponse(d *model.Dispensacion) *dto.DispensacionResponse {
	resp := &dto.DispensacionResponse{
		ID:         d.ID.String(),
		SocioID:    d.SocioID.String(),
		ProductoID: d.ProductoID.String(),
		Cantidad:   d.Cantidad,
		Precio:     d.Precio,
		MetodoPago: d.MetodoPago,
		Notas:      d.Notas,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	}
	if d.Socio != nil {
		resp.Socio = d.Socio.Nombre
	}
	if d.Producto != nil {
		resp.Producto = d.Producto.Nombre
	}
	return resp
}
