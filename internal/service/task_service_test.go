package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
)

func newTaskServiceForTest(db *gorm.DB) TaskService {
	return NewTaskService(repository.NewTaskRepository(db), repository.NewCaseRepository(db), nil)
}

func TestCreateTaskDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)
	creator := seedUser(t, db, "alice", model.RoleStaff)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title: "Prepare filing packet",
	}, creator.ID.String())
	require.NoError(t, err)
	require.Equal(t, model.TaskStatusToDo, task.Status)
	require.Equal(t, model.PriorityMedium, task.Priority)
	require.Nil(t, task.CaseID)
	require.Nil(t, task.CompletedAt)
	require.NotNil(t, task.CreatedBy)
}

func TestCreateTaskBornCompletedIsStamped(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:  "Already done",
		Status: model.TaskStatusCompleted,
	}, "")
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
}

func TestCreateTaskRequiresExistingCase(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:  "Orphan",
		CaseID: "11111111-1111-1111-1111-111111111111",
	}, "")
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateTaskCompletionTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)
	ctx := context.Background()

	task := seedTask(t, db, "review", model.TaskStatusToDo, nil)

	// Entering Completed stamps the time.
	updated, err := svc.UpdateTask(ctx, task.ID.String(), UpdateTaskRequest{Status: model.TaskStatusCompleted})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	stamped := *updated.CompletedAt

	// Staying Completed keeps the original stamp.
	updated, err = svc.UpdateTask(ctx, task.ID.String(), UpdateTaskRequest{Status: model.TaskStatusCompleted})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	require.WithinDuration(t, stamped, *updated.CompletedAt, time.Second)

	// Leaving Completed clears it.
	updated, err = svc.UpdateTask(ctx, task.ID.String(), UpdateTaskRequest{Status: "In Progress"})
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt)
}

func TestListTasksOrdersByDueDateWithUndatedLast(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)

	seedTask(t, db, "undated", model.TaskStatusToDo, nil)
	seedTask(t, db, "later", model.TaskStatusToDo, datePtr(t, "2026-09-20"))
	seedTask(t, db, "sooner", model.TaskStatusToDo, datePtr(t, "2026-09-01"))

	tasks, total, err := svc.ListTasks(context.Background(), 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, "sooner", tasks[0].Title)
	require.Equal(t, "later", tasks[1].Title)
	require.Equal(t, "undated", tasks[2].Title)
}

func TestListMyTasksFiltersByAssignee(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)

	mine := seedUser(t, db, "alice", model.RoleStaff)
	other := seedUser(t, db, "bob", model.RoleStaff)

	t1 := seedTask(t, db, "mine", model.TaskStatusToDo, nil)
	t1.AssignedTo = &mine.ID
	require.NoError(t, db.Save(t1).Error)

	t2 := seedTask(t, db, "theirs", model.TaskStatusToDo, nil)
	t2.AssignedTo = &other.ID
	require.NoError(t, db.Save(t2).Error)

	tasks, total, err := svc.ListMyTasks(context.Background(), mine.ID.String(), 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	require.Equal(t, "mine", tasks[0].Title)
}

func TestDeleteTaskNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskServiceForTest(db)

	err := svc.DeleteTask(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}
