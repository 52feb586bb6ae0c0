package service

import (
	"context"

	"github.com/google/uuid"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
	ws "immigration-crm/internal/websocket"
)

type CreateClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Nationality    string `json:"nationality"`
	Address        string `json:"address"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
}

// UpdateClientRequest carries the full mutable field set; updates replace
// every descriptive field, they do not merge.
type UpdateClientRequest = CreateClientRequest

// ClientService defines the business operations on clients, including the
// transactional cascade that removes a client's whole subtree.
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest, createdBy string) (*model.Client, error)
	GetClientDetail(ctx context.Context, id string) (*model.ClientDetail, error)
	ListClients(ctx context.Context, page, limit int) ([]model.ClientRow, int64, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo      repository.ClientRepository
	caseRepo        repository.CaseRepository
	interactionRepo repository.InteractionRepository
	txManager       repository.TransactionManager
	hub             *ws.Hub
}

func NewClientService(
	clientRepo repository.ClientRepository,
	caseRepo repository.CaseRepository,
	interactionRepo repository.InteractionRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ClientService {
	return &clientService{
		clientRepo:      clientRepo,
		caseRepo:        caseRepo,
		interactionRepo: interactionRepo,
		txManager:       txManager,
		hub:             hub,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest, createdBy string) (*model.Client, error) {
	dob, err := parseDate(req.DateOfBirth, "date_of_birth")
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Nationality:    req.Nationality,
		Address:        req.Address,
		DateOfBirth:    dob,
		PassportNumber: req.PassportNumber,
	}
	if creatorID, err := uuid.Parse(createdBy); err == nil {
		client.CreatedBy = &creatorID
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClientDetail(ctx context.Context, id string) (*model.ClientDetail, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrClientNotFound)
	}

	cases, err := s.caseRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ClientDetail{Client: *client, Cases: cases}, nil
}

func (s *clientService) ListClients(ctx context.Context, page, limit int) ([]model.ClientRow, int64, error) {
	return s.clientRepo.ListRows(ctx, page, limit)
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrClientNotFound)
	}

	dob, err := parseDate(req.DateOfBirth, "date_of_birth")
	if err != nil {
		return nil, err
	}

	// Full replace of the mutable field set.
	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Nationality = req.Nationality
	client.Address = req.Address
	client.DateOfBirth = dob
	client.PassportNumber = req.PassportNumber

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes the client, its interactions, its cases and every
// note, task and document under those cases, all inside one transaction.
// Either the whole subtree goes or none of it does.
func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrClientNotFound)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		caseIDs, err := s.caseRepo.ListIDsByClient(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.caseRepo.DeleteChildren(txCtx, caseIDs); err != nil {
			return err
		}
		if err := s.caseRepo.DeleteByClient(txCtx, id); err != nil {
			return err
		}
		if err := s.interactionRepo.DeleteByClient(txCtx, id); err != nil {
			return err
		}
		return s.clientRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.EventClientDeleted, map[string]string{"id": id})
	return nil
}
