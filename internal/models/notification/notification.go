package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	BoardID   uuid.UUID `json:"boardId" db:"board_id"`
	TaskID    uuid.UUID `json:"taskId" db:"task_id"`
	Message   string    `json:"message" db:"message"`
	Seen      bool      `json:"seen" db:"seen"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PushSubscription — подписка браузера на web-push, как её присылает клиент
type PushSubscription struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"userId" db:"user_id"`
	Endpoint string    `json:"endpoint" db:"endpoint"`
	P256dh   string    `json:"p256dh" db:"p256dh"`
	Auth     string    `json:"auth" db:"auth"`
}
