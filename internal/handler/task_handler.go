package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immigration-crm/internal/middleware"
	"immigration-crm/internal/service"
	"immigration-crm/pkg/pagination"
	"immigration-crm/pkg/response"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes binds the task endpoints to the gin RouterGroup
func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/api/tasks", middleware.RequireAuth())
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

// CreateTask handles POST /api/tasks
// @Summary      Create task
// @Description  Creates a task, optionally linked to a case, recording the caller as creator
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateTaskRequest  true  "Create Task Payload"
// @Success      201      {object}  response.Response{data=model.Task}
// @Failure      400      {object}  response.Response
// @Router       /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), req, identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, task))
}

// ListTasks handles GET /api/tasks
// @Summary      List tasks
// @Description  Returns tasks ordered by soonest due date; pass assigned_to=me to see only your own
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        assigned_to  query     string  false  "Filter by assignee, only 'me' is supported"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Items per page"
// @Success      200          {object}  response.Response
// @Router       /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	p := pagination.Parse(c)

	var (
		tasks interface{}
		total int64
		err   error
	)
	if c.Query("assigned_to") == "me" {
		identity := middleware.CurrentIdentity(c)
		tasks, total, err = h.taskService.ListMyTasks(c.Request.Context(), identity.ID, p.Page, p.Limit)
	} else {
		tasks, total, err = h.taskService.ListTasks(c.Request.Context(), p.Page, p.Limit)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}

// UpdateTask handles PUT /api/tasks/:id
// @Summary      Update task
// @Description  Replaces the task's status, priority, due date and description; stamps completion time on the transition into Completed
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Task ID"
// @Param        payload  body      service.UpdateTaskRequest  true  "Update Task Payload"
// @Success      200      {object}  response.Response{data=model.Task}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, task))
}

// DeleteTask handles DELETE /api/tasks/:id
// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Task deleted successfully"}))
}
