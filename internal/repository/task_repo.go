package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// TaskRepository defines data access for Task entities.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListRows(ctx context.Context, page, limit int) ([]model.TaskRow, int64, error)
	ListRowsByAssignee(ctx context.Context, userID string, page, limit int) ([]model.TaskRow, int64, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return GetDB(ctx, r.db).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := GetDB(ctx, r.db).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Tasks sort by ascending due date with undated tasks last; the explicit
// IS NULL sort key keeps postgres and sqlite in agreement.
const taskOrder = "tasks.due_date IS NULL, tasks.due_date ASC"

func (r *taskRepository) ListRows(ctx context.Context, page, limit int) ([]model.TaskRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.TaskRow, 0)
	offset := (page - 1) * limit
	err := db.Table("tasks").
		Select("tasks.*, cases.case_number AS case_number, clients.name AS client_name, users.full_name AS assigned_to_name").
		Joins("LEFT JOIN cases ON cases.id = tasks.case_id").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Order(taskOrder).
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListRowsByAssignee restricts to one user's tasks; the assignee-name join
// is skipped since it is implied by the filter.
func (r *taskRepository) ListRowsByAssignee(ctx context.Context, userID string, page, limit int) ([]model.TaskRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Task{}).Where("assigned_to = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.TaskRow, 0)
	offset := (page - 1) * limit
	err := db.Table("tasks").
		Select("tasks.*, cases.case_number AS case_number, clients.name AS client_name").
		Joins("LEFT JOIN cases ON cases.id = tasks.case_id").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Where("tasks.assigned_to = ?", userID).
		Order(taskOrder).
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListDueBetween returns unfinished tasks whose due date falls inside the window.
func (r *taskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := GetDB(ctx, r.db).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date < ?", from, to).
		Where("status <> ?", model.TaskStatusCompleted).
		Order("due_date asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return GetDB(ctx, r.db).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Task{}).Error
}
