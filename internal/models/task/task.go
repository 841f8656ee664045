package task

import (
	"time"

	"boardTracker/internal/models/label"

	"github.com/google/uuid"
)

type Task struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	UserID              uuid.UUID     `json:"userId" db:"user_id"`
	BoardID             uuid.UUID     `json:"boardId" db:"board_id"`
	Title               string        `json:"title" db:"title"`
	Description         string        `json:"description" db:"description"`
	Status              Status        `json:"status" db:"status"`
	StartDate           *time.Time    `json:"startDate,omitempty" db:"start_date"`
	EndDate             *time.Time    `json:"endDate,omitempty" db:"end_date"`
	Reminder            Reminder      `json:"reminderTime" db:"reminder_time"`
	NotificationCreated bool          `json:"notificationCreated" db:"notification_created"`
	IsActive            bool          `json:"isActive" db:"is_active"`
	Labels              []label.Label `json:"labels"`
	CreatedAt           time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt           *time.Time    `json:"updatedAt,omitempty" db:"updated_at"`
}

type Status string

const StatusTodo Status = "TODO"
const StatusDoing Status = "DOING"
const StatusDone Status = "DONE"

func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// id-шники прикреплённых лейблов
func (t *Task) LabelIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Labels))
	for _, l := range t.Labels {
		ids = append(ids, l.ID)
	}
	return ids
}
