package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Socio represents a registered member of the association.
// Estado: "activo" | "inactivo" | "pendiente"
type Socio struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo string    `gorm:"uniqueIndex;not null"`
	Nombre string    `gorm:"index;not null"`
	DNI    string    `gorm:"uniqueIndex;not null;column:dni"`
	Email  *string
	Telefono  *string
	FechaAlta time.Time `gorm:"not null"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// Saldo is the denormalized running total of MovimientoMonedero for this
	// socio. It is only ever written together with a ledger append, inside the
	// same transaction. Negative values are allowed (house tab).
	Saldo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// RFID is the optional access card tag; unique when present.
	RFID      *string `gorm:"uniqueIndex;column:rfid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Documentos []Documento `gorm:"foreignKey:SocioID;constraint:OnDelete:CASCADE"`
}
