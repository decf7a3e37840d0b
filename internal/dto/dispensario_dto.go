package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type DispensacionFilter struct {
	SocioID    string `form:"socio_id"    validate:"omitempty,uuid"`
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Fecha      string `form:"fecha"` // YYYY-MM-DD; empty = all
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DispensacionListResponse struct {
	Data  []DispensacionResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SugerenciaRequest asks for the weight suggestion for a desired spend.
type SugerenciaRequest struct {
	ProductoID    string          `json:"producto_id"    validate:"required,uuid"`
	PrecioDeseado decimal.Decimal `json:"precio_deseado" validate:"required,gt=0"`
}

// DispensarRequest registers a sale. PrecioDeseado is the amount agreed with
// the socio before weighing; GramosReales is what the scale showed. The two
// are independent: the price is never recomputed from the final weight.
type DispensarRequest struct {
	SocioID       string          `json:"socio_id"       validate:"required,uuid"`
	ProductoID    string          `json:"producto_id"    validate:"required,uuid"`
	PrecioDeseado decimal.Decimal `json:"precio_deseado" validate:"required,gt=0"`
	GramosReales  decimal.Decimal `json:"gramos_reales"  validate:"required,gt=0"`
	MetodoPago    string          `json:"metodo_pago"    validate:"required,oneof=efectivo bizum monedero"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SugerenciaResponse struct {
	ProductoID       string          `json:"producto_id"`
	PrecioDeseado    decimal.Decimal `json:"precio_deseado"`
	PrecioGramo      decimal.Decimal `json:"precio_gramo"`
	GramosCalculados decimal.Decimal `json:"gramos_calculados"`
}

type DispensacionResponse struct {
	ID         string          `json:"id"`
	SocioID    string          `json:"socio_id"`
	Socio      string          `json:"socio,omitempty"`
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto,omitempty"`
	Cantidad   decimal.Decimal `json:"cantidad_gramos"`
	Precio     decimal.Decimal `json:"precio"`
	MetodoPago string          `json:"metodo_pago"`
	Notas      string          `json:"notas,omitempty"`
	// SaldoSocio is returned after monedero sales so the operator sees the
	// resulting (possibly negative) balance immediately.
	SaldoSocio *decimal.Decimal `json:"saldo_socio,omitempty"`
	CreatedAt  string           `json:"created_at"`
}
