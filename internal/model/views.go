package model

import (
	"time"

	"github.com/google/uuid"
)

// Denormalized read rows produced by the list queries. Name columns are
// pointers because the joins are LEFT JOINs: a dangling reference keeps the
// row and yields a null name.

// ClientRow is a client joined with the creating user's name.
type ClientRow struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Nationality    string     `json:"nationality"`
	Address        string     `json:"address"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	PassportNumber string     `json:"passport_number"`
	CreatedBy      *uuid.UUID `json:"created_by"`
	CreatedByName  *string    `json:"created_by_name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ClientDetail is a client with its cases nested.
type ClientDetail struct {
	Client
	Cases []Case `gorm:"-" json:"cases"`
}

// CaseRow is a case joined with its client's and assignee's names.
type CaseRow struct {
	ID             uuid.UUID  `json:"id"`
	ClientID       uuid.UUID  `json:"client_id"`
	CaseNumber     string     `json:"case_number"`
	CaseType       string     `json:"case_type"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Deadline       *time.Time `json:"deadline"`
	FilingDate     *time.Time `json:"filing_date"`
	AssignedTo     *uuid.UUID `json:"assigned_to"`
	Notes          string     `json:"notes"`
	ClientName     *string    `json:"client_name"`
	AssignedToName *string    `json:"assigned_to_name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CaseDetail is a CaseRow enriched with the client's email and the case's
// notes, newest first.
type CaseDetail struct {
	CaseRow
	ClientEmail *string       `json:"client_email"`
	NotesList   []CaseNoteRow `gorm:"-" json:"notes_list"`
}

// CaseNoteRow is a case note joined with its author's name and role.
type CaseNoteRow struct {
	ID         uuid.UUID `json:"id"`
	CaseID     uuid.UUID `json:"case_id"`
	UserID     uuid.UUID `json:"user_id"`
	NoteType   string    `json:"note_type"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	UserName   *string   `json:"user_name"`
	UserRole   *string   `json:"user_role"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskRow is a task joined with its case number, the case's client name and
// (unless the caller filtered to their own tasks) the assignee's name.
type TaskRow struct {
	ID             uuid.UUID  `json:"id"`
	CaseID         *uuid.UUID `json:"case_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	AssignedTo     *uuid.UUID `json:"assigned_to"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedBy      *uuid.UUID `json:"created_by"`
	CaseNumber     *string    `json:"case_number"`
	ClientName     *string    `json:"client_name"`
	AssignedToName *string    `json:"assigned_to_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DocumentRow is a document joined with its case number, client name and
// uploader name.
type DocumentRow struct {
	ID             uuid.UUID  `json:"id"`
	CaseID         uuid.UUID  `json:"case_id"`
	DocumentType   string     `json:"document_type"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes"`
	ReceivedDate   *time.Time `json:"received_date"`
	UploadedBy     *uuid.UUID `json:"uploaded_by"`
	CaseNumber     *string    `json:"case_number"`
	ClientName     *string    `json:"client_name"`
	UploadedByName *string    `json:"uploaded_by_name"`
	CreatedAt      time.Time  `json:"created_at"`
}

// InteractionRow is an interaction joined with the client's and user's names.
type InteractionRow struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	UserID          uuid.UUID `json:"user_id"`
	Type            string    `json:"type"`
	Notes           string    `json:"notes"`
	ClientName      *string   `json:"client_name"`
	UserName        *string   `json:"user_name"`
	InteractionDate time.Time `json:"interaction_date"`
}
