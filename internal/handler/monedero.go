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

type MonederoHandler struct{ svc service.MonederoService }

func NewMonederoHandler(svc service.MonederoService) *MonederoHandler {
	return &MonederoHandler{svc: svc}
}

// Recargar godoc
// @Summary Recarga el monedero de un socio (requiere caja abierta)
// @Tags monedero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Param body body dto.RecargarMonederoRequest true "Importe y método de pago"
// @Success 200 {object} dto.MonederoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/socios/{id}/monedero/recargar [post]
func (h *MonederoHandler) Recargar(c *gin.Context) {
	socioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RecargarMonederoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Recargar(c.Request.Context(), socioID, usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Saldo godoc
// @Summary Devuelve el saldo del monedero de un socio
// @Tags monedero
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Success 200 {object} dto.MonederoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/{id}/monedero [get]
func (h *MonederoHandler) Saldo(c *gin.Context) {
	socioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Saldo(c.Request.Context(), socioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos godoc
// @Summary Lista los movimientos del monedero de un socio
// @Tags monedero
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Param page query int false "Página (defecto 1)"
// @Param limit query int false "Tamaño de página (defecto 50)"
// @Success 200 {object} dto.MovimientosMonederoListResponse
// @Router /v1/socios/{id}/monedero/movimientos [get]
func (h *MonederoHandler) Movimientos(c *gin.Context) {
	socioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.Movimientos(c.Request.Context(), socioID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
