package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Visible   string `form:"visible"` // true (default) | false | all
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2"`
	Categoria   string          `json:"categoria"    validate:"required"`
	Tipo        string          `json:"tipo"`
	PrecioGramo decimal.Decimal `json:"precio_gramo" validate:"required,gt=0"`
	CostoGramo  decimal.Decimal `json:"costo_gramo"  validate:"min=0"`
	StockGramos decimal.Decimal `json:"stock_gramos" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      string           `json:"nombre"`
	Categoria   string           `json:"categoria"`
	Tipo        *string          `json:"tipo"`
	PrecioGramo *decimal.Decimal `json:"precio_gramo" validate:"omitempty,gt=0"`
	CostoGramo  *decimal.Decimal `json:"costo_gramo"  validate:"omitempty,min=0"`
}

type AjustarStockRequest struct {
	// DeltaGramos is signed: positive adds stock, negative removes it.
	DeltaGramos decimal.Decimal `json:"delta_gramos" validate:"required"`
	Motivo      string          `json:"motivo"       validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Tipo        string          `json:"tipo"`
	PrecioGramo decimal.Decimal `json:"precio_gramo"`
	// CostoGramo is only populated for administrators.
	CostoGramo  *decimal.Decimal `json:"costo_gramo,omitempty"`
	StockGramos decimal.Decimal  `json:"stock_gramos"`
	Visible     bool             `json:"visible"`
}
