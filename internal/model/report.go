package model

import "time"

// Report is a public declaration that a device is lost or stolen.
type Report struct {
	ID           int64     `json:"-"`
	Ref          string    `json:"ref"`
	IMEI         string    `json:"imei"`
	Status       string    `json:"status"`
	IsPublic     bool      `json:"is_public"`
	Brand        string    `json:"brand,omitempty"`
	Model        string    `json:"model,omitempty"`
	Color        string    `json:"color,omitempty"`
	Description  string    `json:"description,omitempty"`
	LostDate     string    `json:"lost_date,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	PoliceReport string    `json:"police_report,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicReport is the subset of a report shown to anonymous callers.
// It deliberately has no contact or police report fields.
type PublicReport struct {
	Ref         string    `json:"ref"`
	IMEI        string    `json:"imei"`
	Status      string    `json:"status"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	LostDate    string    `json:"lost_date,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Report statuses.
const (
	StatusLost      = "lost"
	StatusStolen    = "stolen"
	StatusRecovered = "recovered"
)

// ValidStatus reports whether status is one of the known report statuses.
// Any status may follow any other; there is no forward-only ordering.
func ValidStatus(status string) bool {
	switch status {
	case StatusLost, StatusStolen, StatusRecovered:
		return true
	}
	return false
}

// ValidInitialStatus reports whether a new report may be created with status.
func ValidInitialStatus(status string) bool {
	return status == StatusLost || status == StatusStolen
}
