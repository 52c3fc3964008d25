package models

import (
	"time"
)

// StatusUpdate is one entry in a project's append-only timeline. The text
// is free-form: users write notes directly, and the UI appends generated
// narratives ("Status changed from X to Y by U", checklist toggles) through
// the same mechanism. Entries are never edited or deleted.
type StatusUpdate struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	Progress   *int      `json:"progress,omitempty"`
	UpdateText string    `json:"update_text"`
	UpdatedBy  string    `json:"updated_by"`
	CreatedAt  time.Time `json:"created_at"`
}
