// Package record defines the result of investigating one email address.
package record

import (
	"encoding/json"
	"time"
)

// TimeLayout is the ISO-8601 layout used for every timestamp goosint writes.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Status is the outcome of one investigation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusNoData  Status = "no_data"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
	StatusError   Status = "error"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusSuccess, StatusNoData, StatusFailed, StatusTimeout, StatusError}

// NoDataMessage is stored on no_data records.
const NoDataMessage = "No detailed information found"

// Profile holds account fields pulled from the GHunt output.
type Profile struct {
	Email          string `json:"email,omitempty"`
	GaiaID         string `json:"gaia_id,omitempty"`
	LastEdit       string `json:"last_edit,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Services holds per-service flags pulled from the GHunt output.
type Services struct {
	MapsProfile       string   `json:"maps_profile,omitempty"`
	ChatEntityType    string   `json:"chat_entity_type,omitempty"`
	ChatCustomerID    string   `json:"chat_customer_id,omitempty"`
	EnterpriseUser    string   `json:"enterprise_user,omitempty"`
	ActivatedServices []string `json:"activated_services,omitempty"`
	MapsReviews       string   `json:"maps_reviews,omitempty"`
	MapsPhotos        string   `json:"maps_photos,omitempty"`
	MapsAnswers       string   `json:"maps_answers,omitempty"`
}

// Record is one investigation. Only the fields that belong to Status are
// written when the record is marshaled.
type Record struct {
	Email     string
	Timestamp time.Time
	Status    Status

	// success
	GoogleAccount map[string]string
	Services      Services
	Profile       Profile
	RawOutput     []string

	// no_data
	Message string

	// failed, timeout, error
	Error string
}

// New returns an empty success record for email stamped at now.
func New(email string, now time.Time) Record {
	return Record{
		Email:         email,
		Timestamp:     now,
		Status:        StatusSuccess,
		GoogleAccount: map[string]string{},
		RawOutput:     []string{},
	}
}

// NoData returns the placeholder stored when GHunt printed nothing usable.
func NoData(email string, now time.Time) Record {
	return Record{Email: email, Timestamp: now, Status: StatusNoData, Message: NoDataMessage}
}

// Failure returns a placeholder for a failed, timed-out or errored call.
func Failure(email string, status Status, msg string, now time.Time) Record {
	return Record{Email: email, Timestamp: now, Status: status, Error: msg}
}

type successJSON struct {
	Email         string            `json:"email"`
	Timestamp     string            `json:"timestamp"`
	Status        Status            `json:"status"`
	GoogleAccount map[string]string `json:"google_account"`
	Services      Services          `json:"services"`
	Profile       Profile           `json:"profile"`
	RawOutput     []string          `json:"raw_output"`
}

type noDataJSON struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
	Status    Status `json:"status"`
	Message   string `json:"message"`
}

type failureJSON struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
	Status    Status `json:"status"`
	Error     string `json:"error"`
}

// MarshalJSON writes {email, timestamp, status, ...status-dependent fields}.
func (r Record) MarshalJSON() ([]byte, error) {
	ts := r.Timestamp.Format(TimeLayout)
	switch r.Status {
	case StatusSuccess:
		account := r.GoogleAccount
		if account == nil {
			account = map[string]string{}
		}
		raw := r.RawOutput
		if raw == nil {
			raw = []string{}
		}
		return json.Marshal(successJSON{
			Email:         r.Email,
			Timestamp:     ts,
			Status:        r.Status,
			GoogleAccount: account,
			Services:      r.Services,
			Profile:       r.Profile,
			RawOutput:     raw,
		})
	case StatusNoData:
		return json.Marshal(noDataJSON{Email: r.Email, Timestamp: ts, Status: r.Status, Message: r.Message})
	default:
		return json.Marshal(failureJSON{Email: r.Email, Timestamp: ts, Status: r.Status, Error: r.Error})
	}
}
