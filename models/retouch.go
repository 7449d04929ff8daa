package models

import "time"

// RetouchAlert flags a client whose last completed visit for a
// retouch-tracked service is due (or overdue) for a repeat.
type RetouchAlert struct {
	ClientID      string    `json:"clientId"`
	ClientName    string    `json:"clientName"`
	ServiceID     string    `json:"serviceId"`
	ServiceName   string    `json:"serviceName"`
	LastVisit     string    `json:"lastVisit"`
	DueDate       time.Time `json:"dueDate"`
	DaysUntilDue  int       `json:"daysUntilDue"`
	Overdue       bool      `json:"overdue"`
	PriorityScore int       `json:"priorityScore"`
}

// RetouchReminderPayload is the queued outreach task body.
type RetouchReminderPayload struct {
	ClientID     string `json:"clientId"`
	ServiceID    string `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	DueDate      string `json:"dueDate"`
	DaysUntilDue int    `json:"daysUntilDue"`
}
