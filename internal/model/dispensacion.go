package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dispensacion records a single point-of-sale operation: a weighed quantity
// handed to a socio in exchange for payment.
//
// Precio is the amount agreed BEFORE weighing (the socio's desired spend) and
// is independent of Cantidad: small weighing discrepancies are absorbed, not
// re-billed. Notas keeps the deseado/calculado/real trio for audit.
// MetodoPago: "efectivo" | "bizum" | "monedero"
type Dispensacion struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null"`
	Notas      string          `gorm:"not null;default:''"`
	CreatedAt  time.Time

	Socio    *Socio    `gorm:"foreignKey:SocioID"`
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (Dispensacion) TableName() string { return "dispensaciones" }
