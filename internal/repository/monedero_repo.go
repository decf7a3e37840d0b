package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

// MonederoRepository is the append-only ledger of stored-value movements.
// There is deliberately no Update or Delete: corrections are new entries.
type MonederoRepository interface {
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoMonedero) error
	ListBySocio(ctx context.Context, socioID uuid.UUID, page, limit int) ([]model.MovimientoMonedero, int64, error)
	// SumBySocio recomputes the ledger total from scratch; the reconciliation
	// worker compares it against the denormalized Socio.Saldo.
	SumBySocio(ctx context.Context, socioID uuid.UUID) (decimal.Decimal, error)
}

type monederoRepo struct{ db *gorm.DB }

func NewMonederoRepository(db *gorm.DB) MonederoRepository { return &monederoRepo{db: db} }

func (r *monederoRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoMonedero) error {
	return tx.Create(m).Error
}

func (r *monederoRepo) ListBySocio(ctx context.Context, socioID uuid.UUID, page, limit int) ([]model.MovimientoMonedero, int64, error) {
	var movs []model.MovimientoMonedero
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoMonedero{}).Where("socio_id = ?", socioID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movs).Error
	return movs, total, err
}

func (r *monederoRepo) SumBySocio(ctx context.Context, socioID uuid.UUID) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.MovimientoMonedero{}).
		Select("COALESCE(SUM(monto), 0) AS total").
		Where("socio_id = ?", socioID).
		Scan(&row).Error
	return row.Total, err
}
