package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status constants. CompletedAt is derived from the status: it is set
// exactly when the status becomes TaskStatusCompleted and cleared otherwise.
const (
	TaskStatusToDo      = "To Do"
	TaskStatusCompleted = "Completed"
)

// Task is a unit of work, optionally attached to a case. Case-bound tasks
// are removed along with their case; unattached tasks only by direct delete.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID      *uuid.UUID `gorm:"type:uuid;index" json:"case_id"`
	Case        *Case      `gorm:"foreignKey:CaseID" json:"-"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo" json:"-"`
	Status      string     `gorm:"type:varchar(50);not null;default:'To Do'" json:"status"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Creator     *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
