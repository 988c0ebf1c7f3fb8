package domain

// TaskStatus lifecycle: open until someone marks it done.
type TaskStatus string

const (
	TaskOpen TaskStatus = "OPEN"
	TaskDone TaskStatus = "DONE"
)

// Task is a delegated follow-up, usually opened against a flagged device
// (the device Ticket field points back at the task).
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Assignee  string     `json:"assignee"`
	DeviceKey string     `json:"device_key,omitempty"`
	Status    TaskStatus `json:"status"`
	CreatedAt string     `json:"created_at"` // RFC3339
}
