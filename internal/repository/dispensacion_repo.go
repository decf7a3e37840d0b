package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

type DispensacionRepository interface {
	CreateTx(tx *gorm.DB, d *model.Dispensacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Dispensacion, error)
	// DeleteTx removes the sale record itself; its compensations are new
	// rows written by the service in the same transaction.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.DispensacionFilter) ([]model.Dispensacion, int64, error)
	DB() *gorm.DB
}

type dispensacionRepo struct{ db *gorm.DB }

func NewDispensacionRepository(db *gorm.DB) DispensacionRepository {
	return &dispensacionRepo{db: db}
}

func (r *dispensacionRepo) CreateTx(tx *gorm.DB, d *model.Dispensacion) error {
	return tx.Create(d).Error
}

func (r *dispensacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Dispensacion, error) {
	var d model.Dispensacion
	err := r.db.WithContext(ctx).Preload("Socio").Preload("Producto").First(&d, id).Error
	return &d, err
}

func (r *dispensacionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Dispensacion{}, id).Error
}

func (r *dispensacionRepo) List(ctx context.Context, filter dto.DispensacionFilter) ([]model.Dispensacion, int64, error) {
	var dispensaciones []model.Dispensacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Dispensacion{})

	if filter.SocioID != "" {
		q = q.Where("socio_id = ?", filter.SocioID)
	}
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Socio").Preload("Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&dispensaciones).Error
	return dispensaciones, total, err
}

func (r *dispensacionRepo) DB() *gorm.DB { return r.db }
