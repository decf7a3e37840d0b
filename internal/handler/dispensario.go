package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/apierror"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/middleware"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

type DispensarioHandler struct{ svc service.DispensarioService }

func NewDispensarioHandler(svc service.DispensarioService) *DispensarioHandler {
	return &DispensarioHandler{svc: svc}
}

// Sugerencia godoc
// @Summary Calcula los gramos a pesar para un importe deseado
// @Tags dispensario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SugerenciaRequest true "Producto e importe"
// @Success 200 {object} dto.SugerenciaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/dispensario/sugerencia [post]
func (h *DispensarioHandler) Sugerencia(c *gin.Context) {
	var req dto.SugerenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CalcularSugerencia(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dispensar godoc
// @Summary Registra una dispensación con el peso real y el importe acordado
// @Tags dispensario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DispensarRequest true "Datos de la dispensación"
// @Success 201 {object} dto.DispensacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/dispensario/dispensar [post]
func (h *DispensarioHandler) Dispensar(c *gin.Context) {
	var req dto.DispensarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Dispensar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Anular godoc
// @Summary Anula una dispensación restaurando stock y compensando el cobro
// @Tags dispensario
// @Security BearerAuth
// @Param id path string true "ID de la dispensación"
// @Param motivo query string false "Motivo de la anulación"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/dispensario/{id} [delete]
func (h *DispensarioHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Anular(c.Request.Context(), id, usuarioID, c.Query("motivo")); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Obtener godoc
// @Summary Obtiene una dispensación por ID
// @Tags dispensario
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la dispensación"
// @Success 200 {object} dto.DispensacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/dispensario/{id} [get]
func (h *DispensarioHandler) Obtener(c *gin.Context) {
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

// List godoc
// @Summary Lista dispensaciones con filtros
// @Tags dispensario
// @Produce json
// @Security BearerAuth
// @Param socio_id query string false "Filtro por socio"
// @Param producto_id query string false "Filtro por producto"
// @Param fecha query string false "Día concreto (YYYY-MM-DD)"
// @Success 200 {object} dto.DispensacionListResponse
// @Router /v1/dispensario [get]
func (h *DispensarioHandler) List(c *gin.Context) {
	var filter dto.DispensacionFilter
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
