package model

// Task priorities and statuses are stored as display strings; whatever the
// form layer hands over is persisted as-is, unrecognized values included.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Task is a care to-do item scoped to one patient. All timestamps are epoch
// milliseconds; ID 0 means the task has not been persisted yet.
type Task struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	PatientID        string  `gorm:"column:patientId;index"`
	Description      string  `gorm:"column:description"`
	DueDateTime      *int64  `gorm:"column:due_date_time;index"`
	Priority         string  `gorm:"column:priority;index"`
	Status           string  `gorm:"column:status;index"`
	Notes            *string `gorm:"column:notes"`
	CreatedAt        int64   `gorm:"column:created_at;autoCreateTime:milli"`
	CompletedAt      *int64  `gorm:"column:completed_at"`
	ReminderDateTime *int64  `gorm:"column:reminder_date_time"`
}

func (Task) TableName() string { return "tasks" }

// Active reports whether the task still warrants a reminder.
func (t Task) Active() bool {
	return t.Status != StatusCompleted && t.Status != StatusCancelled
}
