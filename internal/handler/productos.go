package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/apierror"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/middleware"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

type ProductoHandler struct{ svc service.ProductoService }

func NewProductoHandler(svc service.ProductoService) *ProductoHandler {
	return &ProductoHandler{svc: svc}
}

func esAdmin(c *gin.Context) bool {
	claims := middleware.GetClaims(c)
	return claims != nil && claims.Rol == "administrador"
}

// Crear godoc
// @Summary Crea un producto (solo administradores)
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoRequest true "Datos del producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/productos [post]
func (h *ProductoHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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
// @Summary Lista productos; por defecto solo los visibles
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param nombre query string false "Filtro por nombre (parcial)"
// @Param categoria query string false "Filtro por categoría"
// @Param visible query string false "true (defecto) | false | all"
// @Success 200 {object} dto.ProductoListResponse
// @Router /v1/productos [get]
func (h *ProductoHandler) List(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter, esAdmin(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtiene un producto por ID
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id} [get]
func (h *ProductoHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id, esAdmin(c))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza un producto (solo administradores)
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id} [put]
func (h *ProductoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarProductoRequest
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

// AjustarStock godoc
// @Summary Ajusta el stock manualmente (solo administradores)
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.AjustarStockRequest true "Delta en gramos y motivo"
// @Success 200 {object} dto.ProductoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/productos/{id}/stock [post]
func (h *ProductoHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ocultar godoc
// @Summary Retira un producto del dispensario sin borrar su historial
// @Tags productos
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id}/ocultar [post]
func (h *ProductoHandler) Ocultar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Ocultar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Mostrar godoc
// @Summary Vuelve a publicar un producto oculto
// @Tags productos
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id}/mostrar [post]
func (h *ProductoHandler) Mostrar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Mostrar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// MovimientosStock godoc
// @Summary Lista el histórico de movimientos de stock
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param producto_id query string false "Filtro por producto"
// @Param tipo query string false "dispensacion | ajuste_manual | restauracion_anulacion"
// @Success 200 {object} map[string]interface{}
// @Router /v1/productos/movimientos-stock [get]
func (h *ProductoHandler) MovimientosStock(c *gin.Context) {
	filter := repository.MovimientoStockFilter{Tipo: c.Query("tipo")}
	if pidStr := c.Query("producto_id"); pidStr != "" {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
			return
		}
		filter.ProductoID = &pid
	}

	movs, total, err := h.svc.MovimientosStock(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movs, "total": total})
}
