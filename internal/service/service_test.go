package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Case{},
		&model.CaseNote{},
		&model.Task{},
		&model.Document{},
		&model.Interaction{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
		FullName: "Test " + username,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClient(t *testing.T, db *gorm.DB, name string) *model.Client {
	t.Helper()

	client := &model.Client{
		Name:  name,
		Email: name + "@example.com",
		Phone: "555-0100",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedCase(t *testing.T, db *gorm.DB, clientID uuid.UUID, caseNumber string) *model.Case {
	t.Helper()

	c := &model.Case{
		ClientID:   clientID,
		CaseNumber: caseNumber,
		CaseType:   "Work Visa",
		Status:     "Open",
		Priority:   model.PriorityMedium,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedTask(t *testing.T, db *gorm.DB, title, status string, dueDate *time.Time) *model.Task {
	t.Helper()

	task := &model.Task{
		Title:    title,
		Status:   status,
		Priority: model.PriorityMedium,
		DueDate:  dueDate,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &parsed
}

func newCaseServiceForTest(db *gorm.DB) CaseService {
	return NewCaseService(
		repository.NewCaseRepository(db),
		repository.NewCaseNoteRepository(db),
		repository.NewClientRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func newClientServiceForTest(db *gorm.DB) ClientService {
	return NewClientService(
		repository.NewClientRepository(db),
		repository.NewCaseRepository(db),
		repository.NewInteractionRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}
