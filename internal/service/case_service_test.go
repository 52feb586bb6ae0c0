package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/middleware"
	"immigration-crm/internal/model"
)

func TestCreateCaseAssignsGeneratedNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)
	client := seedClient(t, db, "maria")

	kase, err := svc.CreateCase(context.Background(), CreateCaseRequest{
		ClientID: client.ID.String(),
		CaseType: "Work Visa",
		Status:   "Open",
		Deadline: "2026-12-01",
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^IMM-\d{4}-\d{4}$`), kase.CaseNumber)
	require.Equal(t, model.PriorityMedium, kase.Priority)
	require.Equal(t, "2026-12-01", kase.Deadline.Format("2006-01-02"))
}

func TestCreateCaseRequiresExistingClient(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	_, err := svc.CreateCase(context.Background(), CreateCaseRequest{
		ClientID: "11111111-1111-1111-1111-111111111111",
		CaseType: "Work Visa",
		Status:   "Open",
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCaseNumberUniqueIndexTranslates(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db, "maria")

	seedCase(t, db, client.ID, "IMM-2026-0042")
	err := db.Create(&model.Case{
		ClientID:   client.ID,
		CaseNumber: "IMM-2026-0042",
		CaseType:   "Work Visa",
		Status:     "Open",
		Priority:   model.PriorityMedium,
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpdateCaseClearsOmittedAssignee(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	client := seedClient(t, db, "maria")
	assignee := seedUser(t, db, "alice", model.RoleStaff)
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")
	kase.AssignedTo = &assignee.ID
	require.NoError(t, db.Save(kase).Error)

	updated, err := svc.UpdateCase(context.Background(), kase.ID.String(), UpdateCaseRequest{
		Status: "In Review",
	})
	require.NoError(t, err)
	require.Equal(t, "In Review", updated.Status)
	require.Nil(t, updated.AssignedTo)
	require.Equal(t, "IMM-2026-0001", updated.CaseNumber)
}

func TestDeleteCaseCascadesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	user := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")
	require.NoError(t, db.Create(&model.CaseNote{CaseID: kase.ID, UserID: user.ID, NoteType: "general", Content: "note"}).Error)
	require.NoError(t, db.Create(&model.Task{CaseID: &kase.ID, Title: "task", Status: model.TaskStatusToDo, Priority: model.PriorityMedium}).Error)
	require.NoError(t, db.Create(&model.Document{CaseID: kase.ID, DocumentType: "Passport", Status: model.DocumentStatusPending}).Error)

	require.NoError(t, svc.DeleteCase(context.Background(), kase.ID.String()))

	for _, m := range []interface{}{&model.Case{}, &model.CaseNote{}, &model.Task{}, &model.Document{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		require.Zero(t, n)
	}

	// The client itself is untouched.
	var clients int64
	require.NoError(t, db.Model(&model.Client{}).Count(&clients).Error)
	require.EqualValues(t, 1, clients)
}

func TestGetCaseDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	_, err := svc.GetCaseDetail(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, apperrors.ErrCaseNotFound)
}

func TestAddCaseNoteReturnsEnrichedRow(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	author := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")

	note, err := svc.AddCaseNote(context.Background(), kase.ID.String(), AddCaseNoteRequest{
		NoteType: "general",
		Content:  "Client provided passport copy",
	}, middleware.Identity{ID: author.ID.String(), Username: author.Username, Role: author.Role})
	require.NoError(t, err)
	require.NotNil(t, note.UserName)
	require.Equal(t, author.FullName, *note.UserName)
	require.NotNil(t, note.UserRole)
	require.Equal(t, model.RoleStaff, *note.UserRole)
}

func TestListCaseNotesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)

	author := seedUser(t, db, "alice", model.RoleStaff)
	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		note := &model.CaseNote{CaseID: kase.ID, UserID: author.ID, NoteType: "general", Content: content}
		note.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(note).Error)
	}

	notes, err := svc.ListCaseNotes(context.Background(), kase.ID.String())
	require.NoError(t, err)
	require.Len(t, notes, 3)
	require.Equal(t, "third", notes[0].Content)
	require.Equal(t, "first", notes[2].Content)
}

func TestDeleteCaseNoteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCaseServiceForTest(db)
	ctx := context.Background()

	author := seedUser(t, db, "alice", model.RoleStaff)
	stranger := seedUser(t, db, "bob", model.RoleStaff)
	manager := seedUser(t, db, "carol", model.RoleManager)
	admin := seedUser(t, db, "dave", model.RoleAdmin)
	client := seedClient(t, db, "maria")
	kase := seedCase(t, db, client.ID, "IMM-2026-0001")

	newNote := func() *model.CaseNote {
		note := &model.CaseNote{CaseID: kase.ID, UserID: author.ID, NoteType: "general", Content: "n"}
		require.NoError(t, db.Create(note).Error)
		return note
	}

	identity := func(u *model.User) middleware.Identity {
		return middleware.Identity{ID: u.ID.String(), Username: u.Username, Role: u.Role}
	}

	// A different staff member, and even a manager, may not delete it.
	note := newNote()
	require.True(t, errors.Is(svc.DeleteCaseNote(ctx, note.ID.String(), identity(stranger)), apperrors.ErrForbidden))
	require.True(t, errors.Is(svc.DeleteCaseNote(ctx, note.ID.String(), identity(manager)), apperrors.ErrForbidden))

	// The author may.
	require.NoError(t, svc.DeleteCaseNote(ctx, note.ID.String(), identity(author)))

	// An admin may delete anyone's note.
	note = newNote()
	require.NoError(t, svc.DeleteCaseNote(ctx, note.ID.String(), identity(admin)))
}
