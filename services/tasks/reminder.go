package tasks

import (
	"encoding/json"
	"time"

	"salonbook/models"

	"github.com/hibiken/asynq"
)

const TypeRetouchRemind = "retouch:remind"

// NewRetouchReminderTask builds the outreach task. The task ID pins one
// reminder per client, service and due date so repeated scans don't
// double-notify.
func NewRetouchReminderTask(payload models.RetouchReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRetouchRemind, b)
	opts := []asynq.Option{
		asynq.TaskID("retouch:" + payload.ClientID + ":" + payload.ServiceID + ":" + payload.DueDate),
		asynq.MaxRetry(3),
		asynq.Retention(48 * time.Hour),
	}
	return task, opts, nil
}

// DecodeRetouchReminder reads a task payload.
func DecodeRetouchReminder(task *asynq.Task) (models.RetouchReminderPayload, error) {
	var p models.RetouchReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
