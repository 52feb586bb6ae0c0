package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
)

func TestCreateDocumentDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(repository.NewDocumentRepository(db), repository.NewCaseRepository(db))

	uploader := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")

	doc, err := svc.CreateDocument(context.Background(), CreateDocumentRequest{
		CaseID:       kase.ID.String(),
		DocumentType: "Passport",
	}, uploader.ID.String())
	require.NoError(t, err)
	require.Equal(t, model.DocumentStatusPending, doc.Status)
	require.NotNil(t, doc.UploadedBy)
	require.Equal(t, uploader.ID, *doc.UploadedBy)
}

func TestCreateDocumentRequiresExistingCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(repository.NewDocumentRepository(db), repository.NewCaseRepository(db))

	_, err := svc.CreateDocument(context.Background(), CreateDocumentRequest{
		CaseID:       "11111111-1111-1111-1111-111111111111",
		DocumentType: "Passport",
	}, "")
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateDocumentReplacesFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(repository.NewDocumentRepository(db), repository.NewCaseRepository(db))

	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")
	doc := &model.Document{CaseID: kase.ID, DocumentType: "Passport", Status: model.DocumentStatusPending, Notes: "awaiting"}
	require.NoError(t, db.Create(doc).Error)

	updated, err := svc.UpdateDocument(context.Background(), doc.ID.String(), UpdateDocumentRequest{
		Status:       "Received",
		ReceivedDate: "2026-08-20",
	})
	require.NoError(t, err)
	require.Equal(t, "Received", updated.Status)
	require.Empty(t, updated.Notes)
	require.NotNil(t, updated.ReceivedDate)
	require.Equal(t, "2026-08-20", updated.ReceivedDate.Format("2006-01-02"))
}

func TestCreateInteractionStampsDateAndActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewInteractionService(repository.NewInteractionRepository(db), repository.NewClientRepository(db))

	actor := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")

	interaction, err := svc.CreateInteraction(context.Background(), CreateInteractionRequest{
		ClientID: client.ID.String(),
		Type:     "call",
		Notes:    "Discussed missing documents",
	}, actor.ID.String())
	require.NoError(t, err)
	require.False(t, interaction.InteractionDate.IsZero())
	require.Equal(t, actor.ID, interaction.UserID)
}

func TestCreateInteractionRequiresExistingClient(t *testing.T) {
	db := newTestDB(t)
	svc := NewInteractionService(repository.NewInteractionRepository(db), repository.NewClientRepository(db))

	actor := seedUser(t, db, "alice", model.RoleStaff)
	_, err := svc.CreateInteraction(context.Background(), CreateInteractionRequest{
		ClientID: "11111111-1111-1111-1111-111111111111",
		Type:     "call",
		Notes:    "n",
	}, actor.ID.String())
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(repository.NewDocumentRepository(db), repository.NewCaseRepository(db))

	err := svc.DeleteDocument(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
