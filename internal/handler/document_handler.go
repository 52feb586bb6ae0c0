package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immigration-crm/internal/middleware"
	"immigration-crm/internal/service"
	"immigration-crm/pkg/pagination"
	"immigration-crm/pkg/response"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes binds the document endpoints to the gin RouterGroup
func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/api/documents", middleware.RequireAuth())
	{
		docs.POST("", h.CreateDocument)
		docs.GET("", h.ListDocuments)
		docs.PUT("/:id", h.UpdateDocument)
		docs.DELETE("/:id", h.DeleteDocument)
	}
}

// CreateDocument handles POST /api/documents
// @Summary      Record document
// @Description  Tracks a required document for a case; only metadata is stored, never file contents
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateDocumentRequest  true  "Create Document Payload"
// @Success      201      {object}  response.Response{data=model.Document}
// @Failure      400      {object}  response.Response
// @Router       /api/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// ListDocuments handles GET /api/documents
// @Summary      List documents
// @Description  Returns document records newest first with case number and client name joined in
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	p := pagination.Parse(c)

	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"documents": docs,
		"total":     total,
		"page":      p.Page,
		"limit":     p.Limit,
	}))
}

// UpdateDocument handles PUT /api/documents/:id
// @Summary      Update document
// @Description  Replaces the document's status, notes and received date
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Document ID"
// @Param        payload  body      service.UpdateDocumentRequest  true  "Update Document Payload"
// @Success      200      {object}  response.Response{data=model.Document}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// DeleteDocument handles DELETE /api/documents/:id
// @Summary      Delete document record
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Document deleted successfully"}))
}
