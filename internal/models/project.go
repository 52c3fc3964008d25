package models

import (
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectInProgress       ProjectStatus = "in-progress"
	ProjectWaitingForClient ProjectStatus = "waiting-for-client-response"
	ProjectPendingFromUs    ProjectStatus = "pending-from-our-side"
	ProjectCompleted        ProjectStatus = "completed"
	ProjectOnHold           ProjectStatus = "on-hold"
)

// ValidProjectStatus reports whether s is one of the five known statuses.
func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectInProgress, ProjectWaitingForClient, ProjectPendingFromUs,
		ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project represents a project created for a client. The client_* fields
// are populated only by listing queries, which join the owning client's
// contact details for display.
type Project struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Type         string        `json:"type,omitempty"`
	ClientID     int64         `json:"client_id"`
	Requirements string        `json:"requirements,omitempty"`
	Budget       *float64      `json:"budget,omitempty"`
	Status       ProjectStatus `json:"status"`
	Progress     int           `json:"progress"`
	StartDate    string        `json:"start_date,omitempty"`
	Deadline     string        `json:"deadline,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`

	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
}

// ProjectUpdate is a full-row update of a project's editable fields.
// A status-only change goes through the single-column path instead so a
// quick status flip from the UI cannot clobber the other fields.
type ProjectUpdate struct {
	Name         string
	Type         string
	Requirements string
	Budget       *float64
	Status       ProjectStatus
	Progress     int
	StartDate    string
	Deadline     string
}
