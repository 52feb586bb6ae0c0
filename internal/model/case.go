package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority constants shared by cases and tasks
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// StatusClosed is the conventional terminal case status; any other value
// counts toward the active-cases dashboard figure.
const StatusClosed = "Closed"

// Case is a legal matter belonging to exactly one client. CaseNumber is
// generated at creation and immutable afterwards; the unique index rejects
// the rare random collision.
type Case struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client    `gorm:"foreignKey:ClientID" json:"-"`
	CaseNumber string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"case_number"`
	CaseType   string     `gorm:"type:varchar(100);not null" json:"case_type"`
	Status     string     `gorm:"type:varchar(50);not null" json:"status"`
	Priority   string     `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"` // Low, Medium, High
	Deadline   *time.Time `gorm:"type:date" json:"deadline"`
	FilingDate *time.Time `gorm:"type:date" json:"filing_date"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	Assignee   *User      `gorm:"foreignKey:AssignedTo" json:"-"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CaseNote is a dated annotation on a case recording its author. Only the
// author or an admin may delete one.
type CaseNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Author     *User     `gorm:"foreignKey:UserID" json:"-"`
	NoteType   string    `gorm:"type:varchar(100);not null" json:"note_type"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsInternal bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *CaseNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
