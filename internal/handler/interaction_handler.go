package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immigration-crm/internal/middleware"
	"immigration-crm/internal/service"
	"immigration-crm/pkg/pagination"
	"immigration-crm/pkg/response"
)

type InteractionHandler struct {
	interactionService service.InteractionService
}

func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// RegisterRoutes binds the interaction endpoints to the gin RouterGroup
func (h *InteractionHandler) RegisterRoutes(router *gin.RouterGroup) {
	interactions := router.Group("/api/interactions", middleware.RequireAuth())
	{
		interactions.POST("", h.CreateInteraction)
		interactions.GET("", h.ListInteractions)
		interactions.DELETE("/:id", h.DeleteInteraction)
	}
}

// CreateInteraction handles POST /api/interactions
// @Summary      Log interaction
// @Description  Records a contact with a client, attributed to the caller
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateInteractionRequest  true  "Create Interaction Payload"
// @Success      201      {object}  response.Response{data=model.Interaction}
// @Failure      400      {object}  response.Response
// @Router       /api/interactions [post]
func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	var req service.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	interaction, err := h.interactionService.CreateInteraction(c.Request.Context(), req, identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, interaction))
}

// ListInteractions handles GET /api/interactions
// @Summary      List interactions
// @Description  Returns interactions most recent first with client and staff names joined in
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/interactions [get]
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	p := pagination.Parse(c)

	interactions, total, err := h.interactionService.ListInteractions(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"interactions": interactions,
		"total":        total,
		"page":         p.Page,
		"limit":        p.Limit,
	}))
}

// DeleteInteraction handles DELETE /api/interactions/:id
// @Summary      Delete interaction
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Interaction ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/interactions/{id} [delete]
func (h *InteractionHandler) DeleteInteraction(c *gin.Context) {
	if err := h.interactionService.DeleteInteraction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Interaction deleted successfully"}))
}
