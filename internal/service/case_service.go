package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/authz"
	"immigration-crm/internal/middleware"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
	ws "immigration-crm/internal/websocket"
	"immigration-crm/pkg/casenumber"
)

type CreateCaseRequest struct {
	ClientID   string `json:"client_id" binding:"required"`
	CaseType   string `json:"case_type" binding:"required"`
	Status     string `json:"status" binding:"required"`
	Priority   string `json:"priority"`
	Deadline   string `json:"deadline"`
	FilingDate string `json:"filing_date"`
	AssignedTo string `json:"assigned_to"`
	Notes      string `json:"notes"`
}

// UpdateCaseRequest is the full mutable field set of a case. ClientID,
// CaseType and CaseNumber are fixed at creation.
type UpdateCaseRequest struct {
	Status     string `json:"status" binding:"required"`
	Priority   string `json:"priority"`
	Deadline   string `json:"deadline"`
	FilingDate string `json:"filing_date"`
	AssignedTo string `json:"assigned_to"`
	Notes      string `json:"notes"`
}

type AddCaseNoteRequest struct {
	NoteType   string `json:"note_type" binding:"required"`
	Content    string `json:"content" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

// CaseService defines the business operations on cases and their notes.
type CaseService interface {
	CreateCase(ctx context.Context, req CreateCaseRequest) (*model.Case, error)
	GetCaseDetail(ctx context.Context, id string) (*model.CaseDetail, error)
	ListCases(ctx context.Context, page, limit int) ([]model.CaseRow, int64, error)
	UpdateCase(ctx context.Context, id string, req UpdateCaseRequest) (*model.Case, error)
	DeleteCase(ctx context.Context, id string) error

	ListCaseNotes(ctx context.Context, caseID string) ([]model.CaseNoteRow, error)
	AddCaseNote(ctx context.Context, caseID string, req AddCaseNoteRequest, actor middleware.Identity) (*model.CaseNoteRow, error)
	DeleteCaseNote(ctx context.Context, noteID string, actor middleware.Identity) error
}

type caseService struct {
	caseRepo   repository.CaseRepository
	noteRepo   repository.CaseNoteRepository
	clientRepo repository.ClientRepository
	txManager  repository.TransactionManager
	hub        *ws.Hub
}

func NewCaseService(
	caseRepo repository.CaseRepository,
	noteRepo repository.CaseNoteRepository,
	clientRepo repository.ClientRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) CaseService {
	return &caseService{
		caseRepo:   caseRepo,
		noteRepo:   noteRepo,
		clientRepo: clientRepo,
		txManager:  txManager,
		hub:        hub,
	}
}

// CreateCase assigns a generated case number. The generator does not avoid
// collisions; the unique index does, and the resulting conflict is surfaced
// for the caller to retry with a fresh number.
func (s *caseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*model.Case, error) {
	if err := validatePriority(req.Priority); err != nil {
		return nil, err
	}
	deadline, err := parseDate(req.Deadline, "deadline")
	if err != nil {
		return nil, err
	}
	filingDate, err := parseDate(req.FilingDate, "filing_date")
	if err != nil {
		return nil, err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apperrors.NewValidationError("client_id must be a valid UUID")
	}
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("client_id references a client that does not exist")
		}
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	c := &model.Case{
		ClientID:   clientID,
		CaseNumber: casenumber.Generate(time.Now()),
		CaseType:   req.CaseType,
		Status:     req.Status,
		Priority:   priority,
		Deadline:   deadline,
		FilingDate: filingDate,
		Notes:      req.Notes,
	}
	if assigneeID, err := uuid.Parse(req.AssignedTo); err == nil {
		c.AssignedTo = &assigneeID
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCaseNumber
		}
		return nil, err
	}

	s.hub.Publish(ws.EventCaseCreated, map[string]string{"id": c.ID.String(), "case_number": c.CaseNumber})
	return c, nil
}

func (s *caseService) GetCaseDetail(ctx context.Context, id string) (*model.CaseDetail, error) {
	detail, err := s.caseRepo.GetDetailRow(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrCaseNotFound)
	}

	notes, err := s.noteRepo.ListRowsByCase(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.NotesList = notes

	return detail, nil
}

func (s *caseService) ListCases(ctx context.Context, page, limit int) ([]model.CaseRow, int64, error) {
	return s.caseRepo.ListRows(ctx, page, limit)
}

func (s *caseService) UpdateCase(ctx context.Context, id string, req UpdateCaseRequest) (*model.Case, error) {
	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrCaseNotFound)
	}

	if err := validatePriority(req.Priority); err != nil {
		return nil, err
	}
	deadline, err := parseDate(req.Deadline, "deadline")
	if err != nil {
		return nil, err
	}
	filingDate, err := parseDate(req.FilingDate, "filing_date")
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	// Full replace of the mutable field set; the case number never changes.
	c.Status = req.Status
	c.Priority = priority
	c.Deadline = deadline
	c.FilingDate = filingDate
	c.Notes = req.Notes
	c.AssignedTo = nil
	if assigneeID, err := uuid.Parse(req.AssignedTo); err == nil {
		c.AssignedTo = &assigneeID
	}

	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCase removes the case and its notes, tasks and documents in one
// transaction; children are never left orphaned, even transiently.
func (s *caseService) DeleteCase(ctx context.Context, id string) error {
	if _, err := s.caseRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrCaseNotFound)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.caseRepo.DeleteChildren(txCtx, []string{id}); err != nil {
			return err
		}
		return s.caseRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.EventCaseDeleted, map[string]string{"id": id})
	return nil
}

func (s *caseService) ListCaseNotes(ctx context.Context, caseID string) ([]model.CaseNoteRow, error) {
	return s.noteRepo.ListRowsByCase(ctx, caseID)
}

func (s *caseService) AddCaseNote(ctx context.Context, caseID string, req AddCaseNoteRequest, actor middleware.Identity) (*model.CaseNoteRow, error) {
	caseUUID, err := uuid.Parse(caseID)
	if err != nil {
		return nil, apperrors.ErrCaseNotFound
	}
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		return nil, notFoundOr(err, apperrors.ErrCaseNotFound)
	}

	authorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	note := &model.CaseNote{
		CaseID:     caseUUID,
		UserID:     authorID,
		NoteType:   req.NoteType,
		Content:    req.Content,
		IsInternal: req.IsInternal,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	// Return the created note enriched with the author's name and role.
	return s.noteRepo.GetRow(ctx, note.ID.String())
}

// DeleteCaseNote enforces the ownership rule: only the note's author or an
// admin may remove it.
func (s *caseService) DeleteCaseNote(ctx context.Context, noteID string, actor middleware.Identity) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return notFoundOr(err, apperrors.ErrCaseNoteNotFound)
	}

	if err := authz.CheckOwner(actor.Role, actor.ID, note.UserID.String(), authz.ActionDeleteCaseNote); err != nil {
		return err
	}

	return s.noteRepo.Delete(ctx, noteID)
}
