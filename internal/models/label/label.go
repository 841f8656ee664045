package label

import (
	"github.com/google/uuid"
)

type Label struct {
	ID      uuid.UUID `json:"id" db:"id"`
	UserID  uuid.UUID `json:"userId,omitempty" db:"user_id"`
	BoardID uuid.UUID `json:"boardId,omitempty" db:"board_id"`
	Name    string    `json:"name" db:"name"`
	Color   *string   `json:"color,omitempty" db:"color"`
}
