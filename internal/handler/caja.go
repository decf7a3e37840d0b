package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/apierror"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/middleware"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre la sesión de caja del día
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Monto de apertura"
// @Success 201 {object} dto.SesionCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la sesión abierta con el recuento declarado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Monto contado"
// @Success 200 {object} dto.CierreCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SesionAbierta godoc
// @Summary Devuelve la sesión abierta con su saldo en vivo
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SesionCajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/abierta [get]
func (h *CajaHandler) SesionAbierta(c *gin.Context) {
	resp, err := h.svc.SesionAbierta(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual en la sesión abierta
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoCajaRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Movimientos godoc
// @Summary Lista los movimientos de una sesión
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {array} dto.MovimientoCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/{id}/movimientos [get]
func (h *CajaHandler) Movimientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerSesion godoc
// @Summary Obtiene una sesión por ID con su saldo recalculado
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {object} dto.SesionCajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{id} [get]
func (h *CajaHandler) ObtenerSesion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerSesion(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSesiones godoc
// @Summary Lista el histórico de sesiones de caja
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (defecto 1)"
// @Param limit query int false "Tamaño de página (defecto 50)"
// @Success 200 {object} dto.SesionCajaListResponse
// @Router /v1/caja [get]
func (h *CajaHandler) ListSesiones(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.ListSesiones(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
