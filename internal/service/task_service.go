package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
	ws "immigration-crm/internal/websocket"
)

type CreateTaskRequest struct {
	CaseID      string `json:"case_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest is the full mutable field set of a task. CompletedAt is
// not here: it is derived from the status.
type UpdateTaskRequest struct {
	Status      string `json:"status" binding:"required"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Description string `json:"description"`
}

// TaskService defines the business operations on tasks.
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest, createdBy string) (*model.Task, error)
	ListTasks(ctx context.Context, page, limit int) ([]model.TaskRow, int64, error)
	ListMyTasks(ctx context.Context, userID string, page, limit int) ([]model.TaskRow, int64, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	caseRepo repository.CaseRepository
	hub      *ws.Hub
}

func NewTaskService(taskRepo repository.TaskRepository, caseRepo repository.CaseRepository, hub *ws.Hub) TaskService {
	return &taskService{taskRepo: taskRepo, caseRepo: caseRepo, hub: hub}
}

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest, createdBy string) (*model.Task, error) {
	if err := validatePriority(req.Priority); err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatusToDo,
		Priority:    model.PriorityMedium,
		DueDate:     dueDate,
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	// A task may exist without a case, but a named case must exist.
	if req.CaseID != "" {
		caseID, err := uuid.Parse(req.CaseID)
		if err != nil {
			return nil, apperrors.NewValidationError("case_id must be a valid UUID")
		}
		if _, err := s.caseRepo.GetByID(ctx, req.CaseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewValidationError("case_id references a case that does not exist")
			}
			return nil, err
		}
		task.CaseID = &caseID
	}

	if assigneeID, err := uuid.Parse(req.AssignedTo); err == nil {
		task.AssignedTo = &assigneeID
	}
	if creatorID, err := uuid.Parse(createdBy); err == nil {
		task.CreatedBy = &creatorID
	}

	// CompletedAt is derived: a task born Completed is stamped immediately.
	if task.Status == model.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, page, limit int) ([]model.TaskRow, int64, error) {
	return s.taskRepo.ListRows(ctx, page, limit)
}

func (s *taskService) ListMyTasks(ctx context.Context, userID string, page, limit int) ([]model.TaskRow, int64, error) {
	return s.taskRepo.ListRowsByAssignee(ctx, userID, page, limit)
}

func (s *taskService) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrTaskNotFound)
	}

	if err := validatePriority(req.Priority); err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	wasCompleted := task.Status == model.TaskStatusCompleted

	// Full replace of the mutable field set.
	task.Status = req.Status
	task.Priority = priority
	task.DueDate = dueDate
	task.Description = req.Description

	// Derive CompletedAt from the status transition.
	if task.Status == model.TaskStatusCompleted {
		if !wasCompleted || task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if task.Status == model.TaskStatusCompleted && !wasCompleted {
		s.hub.Publish(ws.EventTaskCompleted, map[string]string{"id": task.ID.String(), "title": task.Title})
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrTaskNotFound)
	}
	return s.taskRepo.Delete(ctx, id)
}
