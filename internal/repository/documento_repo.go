package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
)

type DocumentoRepository interface {
	Create(ctx context.Context, d *model.Documento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error)
	ListBySocio(ctx context.Context, socioID uuid.UUID) ([]model.Documento, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentoRepo struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository { return &documentoRepo{db: db} }

func (r *documentoRepo) Create(ctx context.Context, d *model.Documento) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *documentoRepo) ListBySocio(ctx context.Context, socioID uuid.UUID) ([]model.Documento, error) {
	var docs []model.Documento
	err := r.db.WithContext(ctx).Where("socio_id = ?", socioID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Documento{}, id).Error
}
