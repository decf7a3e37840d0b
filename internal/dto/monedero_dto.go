package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecargarMonederoRequest tops up a socio's stored balance. The money enters
// the physical till, so an open caja session is required and the metodo is
// restricted to the till rails.
type RecargarMonederoRequest struct {
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo bizum"`
	Concepto   string          `json:"concepto"    validate:"omitempty,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoMonederoResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Monto     decimal.Decimal `json:"monto"`
	Concepto  string          `json:"concepto"`
	CreatedAt string          `json:"created_at"`
}

type MonederoResponse struct {
	SocioID string          `json:"socio_id"`
	Saldo   decimal.Decimal `json:"saldo"`
}

type MovimientosMonederoListResponse struct {
	Data  []MovimientoMonederoResponse `json:"data"`
	Total int64                        `json:"total"`
	Page  int                          `json:"page"`
	Limit int                          `json:"limit"`
}
