package models

import (
	"time"
)

// SubStatus is the pipeline state of a client that has not been
// confirmed yet. It carries no meaning for confirmed or lost clients.
type SubStatus string

const (
	SubStatusInProgress       SubStatus = "in-progress"
	SubStatusWaitingForClient SubStatus = "waiting-for-client-response"
	SubStatusPendingFromUs    SubStatus = "pending-from-our-side"
)

// ValidSubStatus reports whether s is one of the three known sub-statuses.
func ValidSubStatus(s string) bool {
	switch SubStatus(s) {
	case SubStatusInProgress, SubStatusWaitingForClient, SubStatusPendingFromUs:
		return true
	}
	return false
}

// Client represents a tracked client. Every client is in exactly one of
// three buckets: confirmed (is_confirmed and not is_lost), not-confirmed
// (neither flag), or lost (is_lost, which wins over confirmation).
// The projects / active_projects counters are denormalized and maintained
// by the project registry.
type Client struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Company        string    `json:"company,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsConfirmed    bool      `json:"is_confirmed"`
	IsLost         bool      `json:"is_lost"`
	SubStatus      SubStatus `json:"sub_status"`
	StartDate      string    `json:"start_date,omitempty"`
	EndDate        string    `json:"end_date,omitempty"`
	Budget         *float64  `json:"budget,omitempty"`
	Projects       int       `json:"projects"`
	ActiveProjects int       `json:"active_projects"`
	CreatedAt      time.Time `json:"created_at"`
}

// ClientFilter selects one of the client display buckets.
type ClientFilter string

const (
	FilterConfirmed    ClientFilter = "confirmed"
	FilterNotConfirmed ClientFilter = "not-confirmed"
	FilterLost         ClientFilter = "lost"
	// FilterDefault (the empty string) returns everything that is not lost.
	FilterDefault ClientFilter = ""
)

// ClientPatch is a sparse update of a client. Only non-nil fields are
// written; the counters are patchable because the original UI reconciles
// them directly.
type ClientPatch struct {
	Name           *string
	Email          *string
	Phone          *string
	Company        *string
	Address        *string
	IsConfirmed    *bool
	IsLost         *bool
	SubStatus      *string
	StartDate      *string
	EndDate        *string
	Budget         *float64
	Projects       *int
	ActiveProjects *int
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Company == nil && p.Address == nil &&
		p.IsConfirmed == nil && p.IsLost == nil && p.SubStatus == nil &&
		p.StartDate == nil && p.EndDate == nil && p.Budget == nil &&
		p.Projects == nil && p.ActiveProjects == nil
}
