package models

import (
	"time"
)

// User is a login account. Password holds a bcrypt hash for accounts
// created through workflowctl; rows migrated from the legacy system may
// still carry plain text, which the login handler tolerates.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
