package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

// SumaMovimientos aggregates the ledger of one session by direction.
type SumaMovimientos struct {
	Ingresos decimal.Decimal
	Egresos  decimal.Decimal
}

type CajaRepository interface {
	CreateSesion(ctx context.Context, s *model.SesionCaja) error
	// FindAbierta returns the single open session, or gorm.ErrRecordNotFound.
	FindAbierta(ctx context.Context) (*model.SesionCaja, error)
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	UpdateSesion(ctx context.Context, s *model.SesionCaja) error
	ListSesiones(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error)
	// SumMovimientos recomputes ingresos/egresos from scratch, never cached.
	SumMovimientos(ctx context.Context, sesionCajaID uuid.UUID) (SumaMovimientos, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Where("estado = 'abierta'").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Preload("Movimientos").First(&s, id).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) ListSesiones(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var sesiones []model.SesionCaja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SesionCaja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("opened_at DESC").Offset(offset).Limit(limit).Find(&sesiones).Error
	return sesiones, total, err
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("sesion_caja_id = ?", sesionCajaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) SumMovimientos(ctx context.Context, sesionCajaID uuid.UUID) (SumaMovimientos, error) {
	var rows []struct {
		Tipo  string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).
		Select("tipo, COALESCE(SUM(monto), 0) AS total").
		Where("sesion_caja_id = ?", sesionCajaID).
		Group("tipo").
		Scan(&rows).Error
	if err != nil {
		return SumaMovimientos{}, err
	}

	sums := SumaMovimientos{Ingresos: decimal.Zero, Egresos: decimal.Zero}
	for _, row := range rows {
		switch row.Tipo {
		case "ingreso":
			sums.Ingresos = row.Total
		case "egreso":
			sums.Egresos = row.Total
		}
	}
	return sums, nil
}

func (r *cajaRepo) DB() *gorm.DB { return r.db }
