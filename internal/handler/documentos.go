package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/apierror"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

type DocumentoHandler struct{ svc service.DocumentoService }

func NewDocumentoHandler(svc service.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{svc: svc}
}

// Subir godoc
// @Summary Adjunta un documento a un socio
// @Tags documentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Param body body dto.CrearDocumentoRequest true "Documento en base64"
// @Success 201 {object} dto.DocumentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/socios/{id}/documentos [post]
func (h *DocumentoHandler) Subir(c *gin.Context) {
	socioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CrearDocumentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Subir(c.Request.Context(), socioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista los documentos de un socio
// @Tags documentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del socio"
// @Success 200 {array} dto.DocumentoResponse
// @Router /v1/socios/{id}/documentos [get]
func (h *DocumentoHandler) Listar(c *gin.Context) {
	socioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), socioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Descargar godoc
// @Summary Descarga el fichero de un documento
// @Tags documentos
// @Produce octet-stream
// @Security BearerAuth
// @Param docId path string true "ID del documento"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/documentos/{docId} [get]
func (h *DocumentoHandler) Descargar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	doc, ruta, err := h.svc.Descargar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(ruta, doc.Nombre)
}

// Eliminar godoc
// @Summary Elimina un documento y su fichero
// @Tags documentos
// @Security BearerAuth
// @Param docId path string true "ID del documento"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/documentos/{docId} [delete]
func (h *DocumentoHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("docId"))
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
