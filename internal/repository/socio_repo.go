package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

// SocioRepository defines the data access contract for members.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type SocioRepository interface {
	Create(ctx context.Context, s *model.Socio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Socio, error)
	FindByRFID(ctx context.Context, rfid string) (*model.Socio, error)
	List(ctx context.Context, filter dto.SocioFilter) ([]model.Socio, int64, error)
	Update(ctx context.Context, s *model.Socio) error
	// Delete removes the socio; documentos cascade at the DB level.
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Socio, error)
	AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type socioRepo struct{ db *gorm.DB }

func NewSocioRepository(db *gorm.DB) SocioRepository { return &socioRepo{db: db} }

func (r *socioRepo) Create(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *socioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *socioRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&s).Error
	return &s, err
}

func (r *socioRepo) FindByRFID(ctx context.Context, rfid string) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).Where("rfid = ?", rfid).First(&s).Error
	return &s, err
}

func (r *socioRepo) List(ctx context.Context, filter dto.SocioFilter) ([]model.Socio, int64, error) {
	var socios []model.Socio
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Socio{})

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.DNI != "" {
		q = q.Where("dni = ?", filter.DNI)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&socios).Error
	return socios, total, err
}

func (r *socioRepo) Update(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *socioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Documentos").Delete(&model.Socio{ID: id}).Error
}

func (r *socioRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Socio, error) {
	var s model.Socio
	err := tx.First(&s, id).Error
	return &s, err
}

func (r *socioRepo) AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Socio{}).Where("id = ?", id).
		Update("saldo", gorm.Expr("saldo + ?", delta)).Error
}

func (r *socioRepo) DB() *gorm.DB { return r.db }
