package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja represents the lifecycle of a cash register session.
// Estado: "abierta" | "cerrada". At most one session is abierta at a time;
// the open-time guard in CajaService enforces it.
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MontoCierre is what the operator counted at close. A mismatch against
	// the computed balance is reported, never rejected.
	MontoCierre *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Desvio      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado      string           `gorm:"type:varchar(20);not null;default:'abierta'"`
	Notas       *string
	OpenedAt    time.Time
	ClosedAt    *time.Time

	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

// MovimientoCaja is an immutable event in the cash register ledger.
// Tipo: "ingreso" | "egreso". Movements are NEVER modified or deleted —
// reversals create compensating egresos.
type MovimientoCaja struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo         string    `gorm:"type:varchar(20);not null"`
	// MetodoPago: "efectivo" | "bizum"; nil for movements with no payment rail
	// (e.g. manual adjustments).
	MetodoPago *string         `gorm:"type:varchar(20)"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto   string          `gorm:"not null"`
	// ReferenciaID links to the originating Dispensacion or recarga.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimientoCaja) TableName() string { return "movimientos_caja" }
