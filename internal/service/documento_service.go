package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/config"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

// maxDocumentoBytes caps uploads at 10 MB after decoding.
const maxDocumentoBytes = 10 << 20

type DocumentoService interface {
	Subir(ctx context.Context, socioID uuid.UUID, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error)
	Listar(ctx context.Context, socioID uuid.UUID) ([]dto.DocumentoResponse, error)
	// Descargar returns the stored metadata and the absolute path on disk.
	Descargar(ctx context.Context, id uuid.UUID) (*model.Documento, string, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type documentoService struct {
	repo      repository.DocumentoRepository
	socioRepo repository.SocioRepository
	cfg       *config.Config
}

func NewDocumentoService(repo repository.DocumentoRepository, socioRepo repository.SocioRepository, cfg *config.Config) DocumentoService {
	return &documentoService{repo: repo, socioRepo: socioRepo, cfg: cfg}
}

func (s *documentoService) Subir(ctx context.Context, socioID uuid.UUID, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error) {
	if _, err := s.socioRepo.FindByID(ctx, socioID); err != nil {
		return nil, errors.New("Socio no encontrado")
	}

	contenido, err := base64.StdEncoding.DecodeString(req.ContenidoBase64)
	if err != nil {
		return nil, errors.New("Contenido base64 inválido")
	}
	if len(contenido) > maxDocumentoBytes {
		return nil, errors.New("El documento supera el tamaño máximo permitido")
	}

	dir := filepath.Join(s.cfg.DocsStoragePath, socioID.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error preparando almacenamiento: %w", err)
	}

	ruta := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(req.Nombre))
	if err := os.WriteFile(ruta, contenido, 0o640); err != nil {
		return nil, fmt.Errorf("error guardando documento: %w", err)
	}

	doc := &model.Documento{
		SocioID:     socioID,
		Nombre:      req.Nombre,
		Tipo:        req.Tipo,
		Ruta:        ruta,
		TamanoBytes: int64(len(contenido)),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		// Keep disk and DB consistent on failure.
		_ = os.Remove(ruta)
		return nil, err
	}

	resp := documentoToResponse(doc)
	return &resp, nil
}

func (s *documentoService) Listar(ctx context.Context, socioID uuid.UUID) ([]dto.DocumentoResponse, error) {
	docs, err := s.repo.ListBySocio(ctx, socioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentoResponse, 0, len(docs))
	for i := range docs {
		out = append(out, documentoToResponse(&docs[i]))
	}
	return out, nil
}

func (s *documentoService) Descargar(ctx context.Context, id uuid.UUID) (*model.Documento, string, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", errors.New("Documento no encontrado")
	}
	if _, err := os.Stat(doc.Ruta); err != nil {
		return nil, "", errors.New("El fichero del documento no está disponible")
	}
	return doc, doc.Ruta, nil
}

func (s *documentoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("Documento no encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// Best-effort disk cleanup; the row is already gone.
	_ = os.Remove(doc.Ruta)
	return nil
}

func documentoToResponse(d *model.Documento) dto.DocumentoResponse {
	return dto.DocumentoResponse{
		ID:          d.ID.String(),
		SocioID:     d.SocioID.String(),
		Nombre:      d.Nombre,
		Tipo:        d.Tipo,
		TamanoBytes: d.TamanoBytes,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
