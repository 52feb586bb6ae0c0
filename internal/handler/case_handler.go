package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immigration-crm/internal/authz"
	"immigration-crm/internal/middleware"
	"immigration-crm/internal/service"
	"immigration-crm/pkg/pagination"
	"immigration-crm/pkg/response"
)

type CaseHandler struct {
	caseService     service.CaseService
	documentService service.DocumentService
}

func NewCaseHandler(caseService service.CaseService, documentService service.DocumentService) *CaseHandler {
	return &CaseHandler{caseService: caseService, documentService: documentService}
}

// RegisterRoutes binds the case and case-note endpoints to the gin RouterGroup
func (h *CaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	cases := router.Group("/api/cases", middleware.RequireAuth())
	{
		cases.POST("", h.CreateCase)
		cases.GET("", h.ListCases)
		cases.GET("/:id", h.GetCase)
		cases.PUT("/:id", h.UpdateCase)
		cases.DELETE("/:id", middleware.RequireAction(authz.ActionDeleteCase), h.DeleteCase)
		cases.GET("/:id/notes", h.ListCaseNotes)
		cases.POST("/:id/notes", h.AddCaseNote)
		cases.GET("/:id/documents", h.ListCaseDocuments)
	}

	router.DELETE("/api/case-notes/:id", middleware.RequireAuth(), h.DeleteCaseNote)
}

// CreateCase handles POST /api/cases
// @Summary      Create case
// @Description  Opens a new case for an existing client and assigns a generated case number
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCaseRequest  true  "Create Case Payload"
// @Success      201      {object}  response.Response{data=model.Case}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/cases [post]
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req service.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	kase, err := h.caseService.CreateCase(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, kase))
}

// ListCases handles GET /api/cases
// @Summary      List cases
// @Description  Returns cases newest first with client and assignee names joined in
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/cases [get]
func (h *CaseHandler) ListCases(c *gin.Context) {
	p := pagination.Parse(c)

	cases, total, err := h.caseService.ListCases(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"cases": cases,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}

// GetCase handles GET /api/cases/:id
// @Summary      Get case detail
// @Description  Returns the case with client contact info and its notes, newest first
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  response.Response{data=model.CaseDetail}
// @Failure      404  {object}  response.Response
// @Router       /api/cases/{id} [get]
func (h *CaseHandler) GetCase(c *gin.Context) {
	detail, err := h.caseService.GetCaseDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// UpdateCase handles PUT /api/cases/:id
// @Summary      Update case
// @Description  Replaces the case's status, priority, dates, assignee and notes
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Case ID"
// @Param        payload  body      service.UpdateCaseRequest  true  "Update Case Payload"
// @Success      200      {object}  response.Response{data=model.Case}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/cases/{id} [put]
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	var req service.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	kase, err := h.caseService.UpdateCase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, kase))
}

// DeleteCase handles DELETE /api/cases/:id (admin or manager)
// @Summary      Delete case
// @Description  Removes the case together with its notes, tasks and documents
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/cases/{id} [delete]
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	if err := h.caseService.DeleteCase(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Case deleted successfully"}))
}

// ListCaseNotes handles GET /api/cases/:id/notes
// @Summary      List case notes
// @Description  Returns the case's notes newest first with author name and role
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  response.Response{data=[]model.CaseNoteRow}
// @Failure      404  {object}  response.Response
// @Router       /api/cases/{id}/notes [get]
func (h *CaseHandler) ListCaseNotes(c *gin.Context) {
	notes, err := h.caseService.ListCaseNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, notes))
}

// AddCaseNote handles POST /api/cases/:id/notes
// @Summary      Add case note
// @Description  Attaches a note to the case authored by the caller
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Case ID"
// @Param        payload  body      service.AddCaseNoteRequest  true  "Add Note Payload"
// @Success      201      {object}  response.Response{data=model.CaseNoteRow}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/cases/{id}/notes [post]
func (h *CaseHandler) AddCaseNote(c *gin.Context) {
	var req service.AddCaseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	note, err := h.caseService.AddCaseNote(c.Request.Context(), c.Param("id"), req, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, note))
}

// DeleteCaseNote handles DELETE /api/case-notes/:id
// @Summary      Delete case note
// @Description  Removes a note; allowed for its author or an admin
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case Note ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/case-notes/{id} [delete]
func (h *CaseHandler) DeleteCaseNote(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if err := h.caseService.DeleteCaseNote(c.Request.Context(), c.Param("id"), identity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Note deleted successfully"}))
}

// ListCaseDocuments handles GET /api/cases/:id/documents
// @Summary      List case documents
// @Description  Returns the document checklist tracked for the case
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  response.Response{data=[]model.DocumentRow}
// @Failure      404  {object}  response.Response
// @Router       /api/cases/{id}/documents [get]
func (h *CaseHandler) ListCaseDocuments(c *gin.Context) {
	docs, err := h.documentService.ListDocumentsByCase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}
