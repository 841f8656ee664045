package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	EmailValidated     bool       `json:"-" db:"email_validated"`
	EmailNotifications bool       `json:"emailNotifications" db:"email_notifications"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
