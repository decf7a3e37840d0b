package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/model"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

type SocioService interface {
	Crear(ctx context.Context, req dto.CrearSocioRequest) (*dto.SocioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.SocioResponse, error)
	// ObtenerPorRFID resolves the socio from an access card tag, the fast
	// path at the mostrador.
	ObtenerPorRFID(ctx context.Context, rfid string) (*dto.SocioResponse, error)
	List(ctx context.Context, filter dto.SocioFilter) (*dto.SocioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type socioService struct {
	repo repository.SocioRepository
}

func NewSocioService(repo repository.SocioRepository) SocioService {
	return &socioService{repo: repo}
}

func (s *socioService) Crear(ctx context.Context, req dto.CrearSocioRequest) (*dto.SocioResponse, error) {
	// Sequential human-readable codigo; the unique index catches the rare
	// concurrent collision and the caller just retries.
	_, total, err := s.repo.List(ctx, dto.SocioFilter{Estado: "all", Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}

	socio := &model.Socio{
		Codigo:    fmt.Sprintf("SOC-%04d", total+1),
		Nombre:    req.Nombre,
		DNI:       req.DNI,
		Email:     req.Email,
		Telefono:  req.Telefono,
		FechaAlta: time.Now(),
		Estado:    "pendiente",
		RFID:      req.RFID,
	}
	if err := s.repo.Create(ctx, socio); err != nil {
		return nil, err
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) ObtenerPorRFID(ctx context.Context, rfid string) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByRFID(ctx, rfid)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) List(ctx context.Context, filter dto.SocioFilter) (*dto.SocioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	socios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.SocioListResponse{Total: total, Page: filter.Page, Limit: filter.Limit}
	for i := range socios {
		resp.Data = append(resp.Data, socioToResponse(&socios[i]))
	}
	return resp, nil
}

func (s *socioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Socio no encontrado")
	}
	if req.Nombre != "" {
		socio.Nombre = req.Nombre
	}
	if req.Email != nil {
		socio.Email = req.Email
	}
	if req.Telefono != nil {
		socio.Telefono = req.Telefono
	}
	if req.Estado != "" {
		socio.Estado = req.Estado
	}
	if req.RFID != nil {
		socio.RFID = req.RFID
	}
	if err := s.repo.Update(ctx, socio); err != nil {
		return nil, err
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Socio no encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func socioToResponse(socio *model.Socio) dto.SocioResponse {
	return dto.SocioResponse{
		ID:        socio.ID.String(),
		Codigo:    socio.Codigo,
		Nombre:    socio.Nombre,
		DNI:       socio.DNI,
		Email:     socio.Email,
		Telefono:  socio.Telefono,
		FechaAlta: socio.FechaAlta.Format("2006-01-02"),
		Estado:    socio.Estado,
		Saldo:     socio.Saldo,
		RFID:      socio.RFID,
	}
}
