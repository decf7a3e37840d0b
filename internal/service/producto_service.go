package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID, admin bool) (*dto.ProductoResponse, error)
	List(ctx context.Context, filter dto.ProductoFilter, admin bool) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	// AjustarStock applies a signed manual correction and records it in the
	// stock ledger. The resulting stock may not go negative.
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	// Ocultar retires a product from the dispensario without losing its
	// sales history. Mostrar brings it back.
	Ocultar(ctx context.Context, id uuid.UUID) error
	Mostrar(ctx context.Context, id uuid.UUID) error
	MovimientosStock(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	stockRepo repository.MovimientoStockRepository
}

func NewProductoService(repo repository.ProductoRepository, stockRepo repository.MovimientoStockRepository) ProductoService {
	return &productoService{repo: repo, stockRepo: stockRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:      req.Nombre,
		Categoria:   req.Categoria,
		Tipo:        req.Tipo,
		PrecioGramo: req.PrecioGramo,
		CostoGramo:  req.CostoGramo,
		StockGramos: req.StockGramos,
		Visible:     true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Initial stock enters the ledger as a manual adjustment.
	if req.StockGramos.IsPositive() {
		mov := &model.MovimientoStock{
			ProductoID:     p.ID,
			Tipo:           "ajuste_manual",
			CantidadGramos: req.StockGramos,
			StockAnterior:  decimal.Zero,
			StockNuevo:     req.StockGramos,
			Motivo:         "Stock inicial",
		}
		if err := s.stockRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}

	resp := productoToResponse(p, true)
	return &resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID, admin bool) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	resp := productoToResponse(p, admin)
	return &resp, nil
}

func (s *productoService) List(ctx context.Context, filter dto.ProductoFilter, admin bool) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{Total: total, Page: filter.Page, Limit: filter.Limit}
	for i := range productos {
		resp.Data = append(resp.Data, productoToResponse(&productos[i], admin))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}
	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Categoria != "" {
		p.Categoria = req.Categoria
	}
	if req.Tipo != nil {
		p.Tipo = *req.Tipo
	}
	if req.PrecioGramo != nil {
		p.PrecioGramo = *req.PrecioGramo
	}
	if req.CostoGramo != nil {
		p.CostoGramo = *req.CostoGramo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p, true)
	return &resp, nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Producto no encontrado")
	}

	nuevo := p.StockGramos.Add(req.DeltaGramos)
	if nuevo.IsNegative() {
		return nil, ErrStockInsuficiente
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AjustarStockTx(tx, id, req.DeltaGramos); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			ProductoID:     id,
			Tipo:           "ajuste_manual",
			CantidadGramos: req.DeltaGramos,
			StockAnterior:  p.StockGramos,
			StockNuevo:     nuevo,
			Motivo:         req.Motivo,
		}
		return s.stockRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	p.StockGramos = nuevo
	resp := productoToResponse(p, true)
	return &resp, nil
}

func (s *productoService) Ocultar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Producto no encontrado")
	}
	return s.repo.Ocultar(ctx, id)
}

func (s *productoService) Mostrar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Producto no encontrado")
	}
	return s.repo.Mostrar(ctx, id)
}

func (s *productoService) MovimientosStock(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return s.stockRepo.List(ctx, filter)
}

func productoToResponse(p *model.Producto, admin bool) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Tipo:        p.Tipo,
		PrecioGramo: p.PrecioGramo,
		StockGramos: p.StockGramos,
		Visible:     p.Visible,
	}
	if admin {
		costo := p.CostoGramo
		resp.CostoGramo = &costo
	}
	return resp
}
