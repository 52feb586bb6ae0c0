package jobs

import (
	"context"
	"log"
	"time"

	"immigration-crm/internal/repository"
	"immigration-crm/internal/websocket"
)

// ReminderWindow is how far ahead the sweep looks for approaching case
// deadlines and task due dates.
const ReminderWindow = 48 * time.Hour

// ReminderJob periodically scans for cases and tasks coming due soon and
// broadcasts a reminder event for each over the websocket hub.
type ReminderJob struct {
	caseRepo repository.CaseRepository
	taskRepo repository.TaskRepository
	hub      *websocket.Hub
}

func NewReminderJob(caseRepo repository.CaseRepository, taskRepo repository.TaskRepository, hub *websocket.Hub) *ReminderJob {
	return &ReminderJob{caseRepo: caseRepo, taskRepo: taskRepo, hub: hub}
}

// Run executes one sweep. Scheduled from main via cron; safe to invoke
// manually as well.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	until := now.Add(ReminderWindow)

	cases, err := j.caseRepo.ListWithDeadlineBetween(ctx, now, until)
	if err != nil {
		log.Println("reminder sweep: failed to load upcoming case deadlines:", err)
		return
	}
	for _, c := range cases {
		j.hub.Publish(websocket.EventDeadlineReminder, map[string]interface{}{
			"kind":        "case",
			"id":          c.ID,
			"case_number": c.CaseNumber,
			"deadline":    c.Deadline,
		})
	}

	tasks, err := j.taskRepo.ListDueBetween(ctx, now, until)
	if err != nil {
		log.Println("reminder sweep: failed to load upcoming task due dates:", err)
		return
	}
	for _, t := range tasks {
		j.hub.Publish(websocket.EventDeadlineReminder, map[string]interface{}{
			"kind":     "task",
			"id":       t.ID,
			"title":    t.Title,
			"due_date": t.DueDate,
		})
	}

	log.Printf("reminder sweep: %d case(s) and %d task(s) due within %s", len(cases), len(tasks), ReminderWindow)
}
