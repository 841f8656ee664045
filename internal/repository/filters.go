package repository

import "github.com/google/uuid"

// TaskFilter — необязательные условия выборки задач, nil-поля не фильтруют
type TaskFilter struct {
	UserID   uuid.UUID
	BoardID  *uuid.UUID
	Status   *string
	IsActive *bool
}

type NotificationFilter struct {
	UserID  uuid.UUID
	BoardID *uuid.UUID
}
