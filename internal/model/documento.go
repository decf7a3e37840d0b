package model

import (
	"time"

	"github.com/google/uuid"
)

// Documento stores metadata of a file attached to a socio (ID scans, signed
// membership forms). The bytes live on disk under DOCS_STORAGE_PATH; deleting
// the socio cascades to these rows.
type Documento struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre  string    `gorm:"not null"`
	// Tipo: "dni" | "alta" | "otro"
	Tipo        string `gorm:"type:varchar(20);not null;default:'otro'"`
	Ruta        string `gorm:"not null"`
	TamanoBytes int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
}
