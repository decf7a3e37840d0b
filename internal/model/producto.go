package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a dispensable product. All quantities are grams with two
// decimal places; prices are per gram.
type Producto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Categoria string    `gorm:"not null"`
	// Tipo: free-form sub-classification within the categoria (e.g. "sativa").
	Tipo        string          `gorm:"not null;default:''"`
	PrecioGramo decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CostoGramo is never exposed to non-admin users.
	CostoGramo decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// StockGramos is decremented by dispensaciones and restored by
	// anulaciones; the >= 0 invariant is enforced at the service layer.
	StockGramos decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Visible     bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
