package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/apierror"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

type SocioHandler struct{ svc service.SocioService }

func NewSocioHandler(svc service.SocioService) *SocioHandler { return &SocioHandler{svc: svc} }

// Crear godoc
// @Summary Da de alta un socio
// @Tags socios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSocioRequest true "Datos del socio"
// @Success 201 {object} dto.SocioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/socios [post]
func (h *SocioHandler) Crear(c *gin.Context) {
	var req dto.CrearSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista socios con filtros y paginación
// @Tags socios
// @Produce json
// @Security BearerAuth
// @Param nombre query string false "Filtro por nombre (parcial)"
// @Param dni query string false "Filtro por DNI exacto"
// @Param estado query string false "activo | inactivo | pendiente | all"
// @Success 200 {object} dto.SocioListResponse
// @Router /v1/socios [get]
func (h *SocioHandler) List(c *gin.Context) {
	var filter dto.SocioFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtiene un socio por ID
// @Tags socios
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Success 200 {object} dto.SocioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/{id} [get]
func (h *SocioHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorRFID godoc
// @Summary Busca un socio por su tarjeta RFID
// @Tags socios
// @Produce json
// @Security BearerAuth
// @Param rfid path string true "Tag RFID"
// @Success 200 {object} dto.SocioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/rfid/{rfid} [get]
func (h *SocioHandler) ObtenerPorRFID(c *gin.Context) {
	rfid := c.Param("rfid")
	resp, err := h.svc.ObtenerPorRFID(c.Request.Context(), rfid)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza los datos de un socio
// @Tags socios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Param body body dto.ActualizarSocioRequest true "Campos a actualizar"
// @Success 200 {object} dto.SocioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/{id} [put]
func (h *SocioHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Da de baja definitiva a un socio (solo administradores)
// @Tags socios
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/{id} [delete]
func (h *SocioHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
