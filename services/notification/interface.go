package notification

import (
	"context"
	"fmt"

	"salonbook/models"
)

// Notifier delivers a push to a single device.
type Notifier interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// RetouchMessage renders the outreach text for a reminder payload.
func RetouchMessage(p models.RetouchReminderPayload) (title, body string) {
	title = "Time for your " + p.ServiceName + " touch-up"
	switch {
	case p.DaysUntilDue < 0:
		body = fmt.Sprintf("Your %s was due %d day%s ago. Book your next visit today.", p.ServiceName, -p.DaysUntilDue, plural(-p.DaysUntilDue))
	case p.DaysUntilDue == 0:
		body = fmt.Sprintf("Your %s is due today. Book your next visit.", p.ServiceName)
	default:
		body = fmt.Sprintf("Your %s is due in %d day%s (%s). Book ahead to keep your slot.", p.ServiceName, p.DaysUntilDue, plural(p.DaysUntilDue), p.DueDate)
	}
	return title, body
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
