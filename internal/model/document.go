package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatusPending marks a document requirement that has not been
// received yet; pending documents are counted on the dashboard.
const DocumentStatusPending = "Pending"

// Document is a metadata record of a required or received document on a
// case. There is no file storage here, only tracking.
type Document struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"case_id"`
	Case         *Case      `gorm:"foreignKey:CaseID" json:"-"`
	DocumentType string     `gorm:"type:varchar(100);not null" json:"document_type"`
	Status       string     `gorm:"type:varchar(50);not null;default:'Pending'" json:"status"`
	Notes        string     `gorm:"type:text" json:"notes"`
	ReceivedDate *time.Time `gorm:"type:date" json:"received_date"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	Uploader     *User      `gorm:"foreignKey:UploadedBy" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
