package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type SocioFilter struct {
	Nombre string `form:"nombre"`
	DNI    string `form:"dni"`
	Estado string `form:"estado"` // activo | inactivo | pendiente | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SocioListResponse struct {
	Data  []SocioResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSocioRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=3"`
	DNI      string  `json:"dni"      validate:"required,min=8"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
	RFID     *string `json:"rfid"`
}

type ActualizarSocioRequest struct {
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"  validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
	Estado   string  `json:"estado" validate:"omitempty,oneof=activo inactivo pendiente"`
	RFID     *string `json:"rfid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SocioResponse struct {
	ID        string          `json:"id"`
	Codigo    string          `json:"codigo"`
	Nombre    string          `json:"nombre"`
	DNI       string          `json:"dni"`
	Email     *string         `json:"email,omitempty"`
	Telefono  *string         `json:"telefono,omitempty"`
	FechaAlta string          `json:"fecha_alta"`
	Estado    string          `json:"estado"`
	Saldo     decimal.Decimal `json:"saldo"`
	RFID      *string         `json:"rfid,omitempty"`
}
