package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"required,gt=0"`
	Notas         *string         `json:"notas"`
}

type CerrarCajaRequest struct {
	MontoCierre decimal.Decimal `json:"monto_cierre" validate:"min=0"`
	Notas       *string         `json:"notas"`
}

type MovimientoCajaRequest struct {
	Tipo       string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	MetodoPago string          `json:"metodo_pago" validate:"omitempty,oneof=efectivo bizum"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Concepto   string          `json:"concepto"    validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	MetodoPago *string         `json:"metodo_pago,omitempty"`
	Monto      decimal.Decimal `json:"monto"`
	Concepto   string          `json:"concepto"`
	CreatedAt  string          `json:"created_at"`
}

type SesionCajaResponse struct {
	ID            string          `json:"id"`
	Estado        string          `json:"estado"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	// SaldoActual = apertura + Σingresos − Σegresos, recomputed on demand.
	SaldoActual decimal.Decimal  `json:"saldo_actual"`
	MontoCierre *decimal.Decimal `json:"monto_cierre,omitempty"`
	Notas       *string          `json:"notas,omitempty"`
	OpenedAt    string           `json:"opened_at"`
	ClosedAt    *string          `json:"closed_at,omitempty"`
}

// CierreCajaResponse carries the close report. A deviation never blocks the
// close; it is returned as a warning for the operator.
type CierreCajaResponse struct {
	Sesion        SesionCajaResponse `json:"sesion"`
	MontoEsperado decimal.Decimal    `json:"monto_esperado"`
	MontoCierre   decimal.Decimal    `json:"monto_cierre"`
	Desvio        decimal.Decimal    `json:"desvio"`
	// Clasificacion: "normal" | "advertencia" | "critico" (informational only)
	Clasificacion string `json:"clasificacion"`
	Advertencia   string `json:"advertencia,omitempty"`
}

type SesionCajaListResponse struct {
	Data  []SesionCajaResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
