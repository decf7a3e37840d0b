package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoMonedero is one entry in a socio's stored-value ledger.
// Tipo: "deposito" | "retiro". Monto is signed: positive for depositos,
// negative for retiros. The ledger is append-only; Socio.Saldo must always
// equal the sum of these rows for that socio.
type MovimientoMonedero struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tipo     string          `gorm:"type:varchar(20);not null"`
	Concepto string          `gorm:"not null"`
	UsuarioID uuid.UUID      `gorm:"type:uuid;not null"`
	// ReferenciaID links to the Dispensacion or caja movement that caused
	// this entry, when applicable.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimientoMonedero) TableName() string { return "movimientos_monedero" }
