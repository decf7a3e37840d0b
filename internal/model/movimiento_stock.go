package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoStock registra cada cambio de stock de un producto.
// Tipo: "dispensacion" | "ajuste_manual" | "restauracion_anulacion"
// CantidadGramos is signed: positive = entrada, negative = salida.
type MovimientoStock struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo           string          `gorm:"not null"`
	CantidadGramos decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockAnterior  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockNuevo     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Motivo         string
	ReferenciaID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoStock) TableName() string { return "movimientos_stock" }
