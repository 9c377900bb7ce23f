package domain

// ValidationStatus is the classification outcome of a website check
type ValidationStatus string

// validation statuses
const (
	StatusValid       ValidationStatus = "valid"
	StatusParked      ValidationStatus = "parked"
	StatusExpired     ValidationStatus = "expired"
	StatusRedirect    ValidationStatus = "redirect"
	StatusError       ValidationStatus = "error"
	StatusTimeout     ValidationStatus = "timeout"
	StatusMaintenance ValidationStatus = "maintenance"
)

// WebsiteValidation is the result of classifying a URL. Not persisted.
type WebsiteValidation struct {
	IsValid         bool             `json:"isValid"`
	Status          ValidationStatus `json:"status"`
	ActualURL       string           `json:"actualUrl,omitempty"`
	Title           string           `json:"title,omitempty"`
	Error           string           `json:"error,omitempty"`
	ContentLength   int              `json:"contentLength,omitempty"`
	HasValidContent bool             `json:"hasValidContent,omitempty"`
}

// NewValidation makes a validation result keeping IsValid consistent with status
func NewValidation(status ValidationStatus, errMsg string) WebsiteValidation {
	return WebsiteValidation{IsValid: status == StatusValid, Status: status, Error: errMsg}
}
