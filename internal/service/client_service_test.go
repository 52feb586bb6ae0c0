package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
)

func TestCreateClientParsesDateOfBirth(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)
	creator := seedUser(t, db, "alice", model.RoleStaff)

	client, err := svc.CreateClient(context.Background(), CreateClientRequest{
		Name:        "Maria Santos",
		Email:       "maria@example.com",
		Phone:       "555-0199",
		Nationality: "Brazilian",
		DateOfBirth: "1990-04-15",
	}, creator.ID.String())
	require.NoError(t, err)
	require.NotNil(t, client.DateOfBirth)
	require.Equal(t, "1990-04-15", client.DateOfBirth.Format("2006-01-02"))
	require.NotNil(t, client.CreatedBy)
	require.Equal(t, creator.ID, *client.CreatedBy)
}

func TestCreateClientRejectsMalformedDate(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	_, err := svc.CreateClient(context.Background(), CreateClientRequest{
		Name:        "Maria Santos",
		Email:       "maria@example.com",
		Phone:       "555-0199",
		DateOfBirth: "15/04/1990",
	}, "")
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGetClientDetailIncludesCases(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	client := seedClient(t, db, "maria")
	seedCase(t, db, client.ID, "IMM-2026-0001")
	seedCase(t, db, client.ID, "IMM-2026-0002")

	other := seedClient(t, db, "other")
	seedCase(t, db, other.ID, "IMM-2026-0003")

	detail, err := svc.GetClientDetail(context.Background(), client.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Cases, 2)
	require.Equal(t, "IMM-2026-0001", detail.Cases[0].CaseNumber)
	require.Equal(t, "IMM-2026-0002", detail.Cases[1].CaseNumber)
}

func TestUpdateClientReplacesAllFields(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	client := seedClient(t, db, "maria")
	client.Nationality = "Brazilian"
	client.PassportNumber = "BR1234567"
	require.NoError(t, db.Save(client).Error)

	// Fields absent from the payload are cleared, not preserved.
	updated, err := svc.UpdateClient(context.Background(), client.ID.String(), UpdateClientRequest{
		Name:  "Maria Santos",
		Email: "maria.santos@example.com",
		Phone: "555-0200",
	})
	require.NoError(t, err)
	require.Equal(t, "Maria Santos", updated.Name)
	require.Equal(t, "maria.santos@example.com", updated.Email)
	require.Empty(t, updated.Nationality)
	require.Empty(t, updated.PassportNumber)
	require.Nil(t, updated.DateOfBirth)
}

func TestUpdateClientNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	_, err := svc.UpdateClient(context.Background(), "00000000-0000-0000-0000-000000000000", UpdateClientRequest{
		Name: "n", Email: "n@example.com", Phone: "1",
	})
	require.ErrorIs(t, err, apperrors.ErrClientNotFound)
}

func TestDeleteClientCascadesThroughCases(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	user := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")
	kase1 := seedCase(t, db, client.ID, "IMM-2026-0001")
	kase2 := seedCase(t, db, client.ID, "IMM-2026-0002")

	for _, c := range []*model.Case{kase1, kase2} {
		require.NoError(t, db.Create(&model.CaseNote{CaseID: c.ID, UserID: user.ID, NoteType: "general", Content: "note"}).Error)
		require.NoError(t, db.Create(&model.Task{CaseID: &c.ID, Title: "task", Status: model.TaskStatusToDo, Priority: model.PriorityMedium}).Error)
		require.NoError(t, db.Create(&model.Document{CaseID: c.ID, DocumentType: "Passport", Status: model.DocumentStatusPending}).Error)
	}
	require.NoError(t, db.Create(&model.Interaction{ClientID: client.ID, UserID: user.ID, Type: "call", Notes: "spoke"}).Error)

	// Unrelated records must survive the cascade.
	survivor := seedClient(t, db, "other")
	survivorCase := seedCase(t, db, survivor.ID, "IMM-2026-0003")
	require.NoError(t, db.Create(&model.Document{CaseID: survivorCase.ID, DocumentType: "Photo", Status: model.DocumentStatusPending}).Error)

	require.NoError(t, svc.DeleteClient(context.Background(), client.ID.String()))

	counts := map[string]interface{}{
		"clients": &model.Client{}, "cases": &model.Case{}, "case_notes": &model.CaseNote{},
		"tasks": &model.Task{}, "documents": &model.Document{}, "interactions": &model.Interaction{},
	}
	want := map[string]int64{"clients": 1, "cases": 1, "case_notes": 0, "tasks": 0, "documents": 1, "interactions": 0}
	for name, m := range counts {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		require.Equal(t, want[name], n, "unexpected rows left in %s", name)
	}
}

func TestDeleteClientNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newClientServiceForTest(db)

	err := svc.DeleteClient(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, apperrors.ErrClientNotFound)
}
