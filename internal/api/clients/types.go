package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BoolFlag is a bool that also accepts the 0/1 and "0"/"1" encodings the
// legacy frontend sends for the confirmation flags.
type BoolFlag bool

// UnmarshalJSON accepts true/false, 0/1, and their string forms.
func (b *BoolFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = BoolFlag(asBool)
		return nil
	}

	var asNum float64
	if err := json.Unmarshal(data, &asNum); err == nil {
		*b = asNum != 0
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		switch asStr {
		case "1", "true":
			*b = true
			return nil
		case "0", "false", "":
			*b = false
			return nil
		}
	}

	return fmt.Errorf("invalid boolean value: %s", data)
}

// CreateRequest is the body for client creation. Everything after name
// is optional.
type CreateRequest struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	Address     string    `json:"address"`
	IsConfirmed *BoolFlag `json:"is_confirmed"`
	IsLost      *BoolFlag `json:"is_lost"`
	SubStatus   string    `json:"sub_status"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Budget      *float64  `json:"budget"`
}

// UpdateRequest is the body for a sparse client update. The frontend
// sends camelCase keys on update while creation and the API docs use
// snake_case, so both spellings are accepted for the affected fields.
type UpdateRequest struct {
	ID int64 `json:"id"`

	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`

	IsConfirmed      *BoolFlag `json:"is_confirmed"`
	IsConfirmedCamel *BoolFlag `json:"isConfirmed"`
	IsLost           *BoolFlag `json:"is_lost"`
	IsLostCamel      *BoolFlag `json:"isLost"`
	SubStatus        *string   `json:"sub_status"`
	SubStatusCamel   *string   `json:"subStatus"`
	StartDate        *string   `json:"start_date"`
	StartDateCamel   *string   `json:"startDate"`
	EndDate          *string   `json:"end_date"`
	EndDateCamel     *string   `json:"endDate"`

	Budget *float64 `json:"budget"`

	Projects            *int `json:"projects"`
	ActiveProjects      *int `json:"active_projects"`
	ActiveProjectsCamel *int `json:"activeProjects"`
}

// first returns a when set, otherwise b.
func first[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func boolPtr(b *BoolFlag) *bool {
	if b == nil {
		return nil
	}
	v := bool(*b)
	return &v
}
