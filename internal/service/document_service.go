package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
)

type CreateDocumentRequest struct {
	CaseID       string `json:"case_id" binding:"required"`
	DocumentType string `json:"document_type" binding:"required"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// UpdateDocumentRequest is the full mutable field set of a document.
type UpdateDocumentRequest struct {
	Status       string `json:"status" binding:"required"`
	Notes        string `json:"notes"`
	ReceivedDate string `json:"received_date"`
}

// DocumentService defines the business operations on document records.
type DocumentService interface {
	CreateDocument(ctx context.Context, req CreateDocumentRequest, uploadedBy string) (*model.Document, error)
	ListDocuments(ctx context.Context, page, limit int) ([]model.DocumentRow, int64, error)
	ListDocumentsByCase(ctx context.Context, caseID string) ([]model.DocumentRow, error)
	UpdateDocument(ctx context.Context, id string, req UpdateDocumentRequest) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

type documentService struct {
	docRepo  repository.DocumentRepository
	caseRepo repository.CaseRepository
}

func NewDocumentService(docRepo repository.DocumentRepository, caseRepo repository.CaseRepository) DocumentService {
	return &documentService{docRepo: docRepo, caseRepo: caseRepo}
}

func (s *documentService) CreateDocument(ctx context.Context, req CreateDocumentRequest, uploadedBy string) (*model.Document, error) {
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

	doc := &model.Document{
		CaseID:       caseID,
		DocumentType: req.DocumentType,
		Status:       model.DocumentStatusPending,
		Notes:        req.Notes,
	}
	if req.Status != "" {
		doc.Status = req.Status
	}
	if uploaderID, err := uuid.Parse(uploadedBy); err == nil {
		doc.UploadedBy = &uploaderID
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, page, limit int) ([]model.DocumentRow, int64, error) {
	return s.docRepo.ListRows(ctx, page, limit)
}

func (s *documentService) ListDocumentsByCase(ctx context.Context, caseID string) ([]model.DocumentRow, error) {
	return s.docRepo.ListRowsByCase(ctx, caseID)
}

func (s *documentService) UpdateDocument(ctx context.Context, id string, req UpdateDocumentRequest) (*model.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrDocumentNotFound)
	}

	receivedDate, err := parseDate(req.ReceivedDate, "received_date")
	if err != nil {
		return nil, err
	}

	// Full replace of the mutable field set.
	doc.Status = req.Status
	doc.Notes = req.Notes
	doc.ReceivedDate = receivedDate

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrDocumentNotFound)
	}
	return s.docRepo.Delete(ctx, id)
}
