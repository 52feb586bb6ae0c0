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

type CreateInteractionRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Notes    string `json:"notes" binding:"required"`
}

// InteractionService defines the business operations on client interactions.
type InteractionService interface {
	CreateInteraction(ctx context.Context, req CreateInteractionRequest, actorID string) (*model.Interaction, error)
	ListInteractions(ctx context.Context, page, limit int) ([]model.InteractionRow, int64, error)
	DeleteInteraction(ctx context.Context, id string) error
}

type interactionService struct {
	interactionRepo repository.InteractionRepository
	clientRepo      repository.ClientRepository
}

func NewInteractionService(interactionRepo repository.InteractionRepository, clientRepo repository.ClientRepository) InteractionService {
	return &interactionService{interactionRepo: interactionRepo, clientRepo: clientRepo}
}

func (s *interactionService) CreateInteraction(ctx context.Context, req CreateInteractionRequest, actorID string) (*model.Interaction, error) {
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

	userID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	interaction := &model.Interaction{
		ClientID: clientID,
		UserID:   userID,
		Type:     req.Type,
		Notes:    req.Notes,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *interactionService) ListInteractions(ctx context.Context, page, limit int) ([]model.InteractionRow, int64, error) {
	return s.interactionRepo.ListRows(ctx, page, limit)
}

func (s *interactionService) DeleteInteraction(ctx context.Context, id string) error {
	if _, err := s.interactionRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrInteractionNotFound)
	}
	return s.interactionRepo.Delete(ctx, id)
}
