package service

// In-memory repository fakes. All DB() methods return nil so that runTx
// executes the transaction body directly, without a database.

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

// ── fakeCajaRepo ─────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.MovimientoCaja
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (f *fakeCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.sesiones[s.ID] = &cp
	return nil
}

func (f *fakeCajaRepo) FindAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range f.sesiones {
		if s.Estado == "abierta" {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := f.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	cp := *s
	f.sesiones[s.ID] = &cp
	return nil
}

func (f *fakeCajaRepo) ListSesiones(_ context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var out []model.SesionCaja
	for _, s := range f.sesiones {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return f.CreateMovimientoTx(nil, m)
}

func (f *fakeCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	f.movimientos = append(f.movimientos, *m)
	return nil
}

func (f *fakeCajaRepo) ListMovimientos(_ context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range f.movimientos {
		if m.SesionCajaID == sesionCajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCajaRepo) SumMovimientos(_ context.Context, sesionCajaID uuid.UUID) (repository.SumaMovimientos, error) {
	sums := repository.SumaMovimientos{Ingresos: decimal.Zero, Egresos: decimal.Zero}
	for _, m := range f.movimientos {
		if m.SesionCajaID != sesionCajaID {
			continue
		}
		switch m.Tipo {
		case "ingreso":
			sums.Ingresos = sums.Ingresos.Add(m.Monto)
		case "egreso":
			sums.Egresos = sums.Egresos.Add(m.Monto)
		}
	}
	return sums, nil
}

func (f *fakeCajaRepo) DB() *gorm.DB { return nil }

// ── fakeSocioRepo ────────────────────────────────────────────────────────────

type fakeSocioRepo struct {
	socios map[uuid.UUID]*model.Socio
}

var _ repository.SocioRepository = (*fakeSocioRepo)(nil)

func newFakeSocioRepo() *fakeSocioRepo {
	return &fakeSocioRepo{socios: make(map[uuid.UUID]*model.Socio)}
}

func (f *fakeSocioRepo) Create(_ context.Context, s *model.Socio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.socios[s.ID] = &cp
	return nil
}

func (f *fakeSocioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Socio, error) {
	s, ok := f.socios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSocioRepo) FindByCodigo(_ context.Context, codigo string) (*model.Socio, error) {
	for _, s := range f.socios {
		if s.Codigo == codigo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSocioRepo) FindByRFID(_ context.Context, rfid string) (*model.Socio, error) {
	for _, s := range f.socios {
		if s.RFID != nil && *s.RFID == rfid {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSocioRepo) List(_ context.Context, filter dto.SocioFilter) ([]model.Socio, int64, error) {
	var out []model.Socio
	for _, s := range f.socios {
		if filter.Estado != "" && filter.Estado != "all" && s.Estado != filter.Estado {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSocioRepo) Update(_ context.Context, s *model.Socio) error {
	cp := *s
	f.socios[s.ID] = &cp
	return nil
}

func (f *fakeSocioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.socios, id)
	return nil
}

func (f *fakeSocioRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Socio, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeSocioRepo) AjustarSaldoTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	s, ok := f.socios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Saldo = s.Saldo.Add(delta)
	return nil
}

func (f *fakeSocioRepo) DB() *gorm.DB { return nil }

// ── fakeProductoRepo ─────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (f *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	f.productos[p.ID] = &cp
	return nil
}

func (f *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := f.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range f.productos {
		switch filter.Visible {
		case "false":
			if p.Visible {
				continue
			}
		case "all":
		default:
			if !p.Visible {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	f.productos[p.ID] = &cp
	return nil
}

func (f *fakeProductoRepo) Ocultar(_ context.Context, id uuid.UUID) error {
	if p, ok := f.productos[id]; ok {
		p.Visible = false
	}
	return nil
}

func (f *fakeProductoRepo) Mostrar(_ context.Context, id uuid.UUID) error {
	if p, ok := f.productos[id]; ok {
		p.Visible = true
	}
	return nil
}

func (f *fakeProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeProductoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, deltaGramos decimal.Decimal) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockGramos = p.StockGramos.Add(deltaGramos)
	return nil
}

func (f *fakeProductoRepo) DB() *gorm.DB { return nil }

// ── fakeDispensacionRepo ─────────────────────────────────────────────────────

type fakeDispensacionRepo struct {
	dispensaciones map[uuid.UUID]*model.Dispensacion
}

var _ repository.DispensacionRepository = (*fakeDispensacionRepo)(nil)

func newFakeDispensacionRepo() *fakeDispensacionRepo {
	return &fakeDispensacionRepo{dispensaciones: make(map[uuid.UUID]*model.Dispensacion)}
}

func (f *fakeDispensacionRepo) CreateTx(_ *gorm.DB, d *model.Dispensacion) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	cp := *d
	f.dispensaciones[d.ID] = &cp
	return nil
}

func (f *fakeDispensacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Dispensacion, error) {
	d, ok := f.dispensaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDispensacionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(f.dispensaciones, id)
	return nil
}

func (f *fakeDispensacionRepo) List(_ context.Context, filter dto.DispensacionFilter) ([]model.Dispensacion, int64, error) {
	var out []model.Dispensacion
	for _, d := range f.dispensaciones {
		if filter.SocioID != "" && d.SocioID.String() != filter.SocioID {
			continue
		}
		if filter.ProductoID != "" && d.ProductoID.String() != filter.ProductoID {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDispensacionRepo) DB() *gorm.DB { return nil }

// ── fakeMonederoRepo ─────────────────────────────────────────────────────────

type fakeMonederoRepo struct {
	movimientos []model.MovimientoMonedero
}

var _ repository.MonederoRepository = (*fakeMonederoRepo)(nil)

func (f *fakeMonederoRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoMonedero) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	f.movimientos = append(f.movimientos, *m)
	return nil
}

func (f *fakeMonederoRepo) ListBySocio(_ context.Context, socioID uuid.UUID, page, limit int) ([]model.MovimientoMonedero, int64, error) {
	var out []model.MovimientoMonedero
	for _, m := range f.movimientos {
		if m.SocioID == socioID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMonederoRepo) SumBySocio(_ context.Context, socioID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.movimientos {
		if m.SocioID == socioID {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

// ── fakeStockRepo ────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	movimientos []model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*fakeStockRepo)(nil)

func (f *fakeStockRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return f.CreateTx(nil, m)
}

func (f *fakeStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	f.movimientos = append(f.movimientos, *m)
	return nil
}

func (f *fakeStockRepo) List(_ context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range f.movimientos {
		if filter.ProductoID != nil && m.ProductoID != *filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}
