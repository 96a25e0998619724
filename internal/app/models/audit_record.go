package models

import "time"

// AuditRecord documents one clinical data access. Exactly one record is
// produced per identified request, success or failure.
type AuditRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	HospitalID   string    `json:"hospital_id"`
	PatientID    string    `json:"patient_id,omitempty"`
	Action       string    `json:"action"`
	Outcome      string    `json:"outcome"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
