package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearDocumentoRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Tipo   string `json:"tipo"   validate:"required,oneof=dni alta otro"`
	// ContenidoBase64 carries the file bytes; they are written under
	// DOCS_STORAGE_PATH and only the path is persisted.
	ContenidoBase64 string `json:"contenido_base64" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DocumentoResponse struct {
	ID          string `json:"id"`
	SocioID     string `json:"socio_id"`
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo"`
	TamanoBytes int64  `json:"tamano_bytes"`
	CreatedAt   string `json:"created_at"`
}
