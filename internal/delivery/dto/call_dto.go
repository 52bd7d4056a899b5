package dto

// Call result statuses. The scheduled/skipped strings are part of the API
// contract consumed by the dashboard, keep them stable.
const (
	CallStatusScheduled      = "Scheduled"
	CallStatusSkippedPast    = "Skipped - Scheduled time is in the past"
	CallStatusSkippedMissing = "Skipped - Missing scheduled date or time"
	CallStatusFailed         = "Failed"
	CallStatusUnknown        = "Unknown"

	CallIDPending = "Pending"
	CallIDNone    = "N/A"
)

// CallResult reports the outcome of scheduling (or skipping) one call.
// ScheduledFor is RFC3339; prescription fields are only set in medicine
// reminder mode.
type CallResult struct {
	PhoneNumber    string `json:"phone_number"`
	Status         string `json:"status"`
	CallID         string `json:"call_id,omitempty"`
	ScheduledFor   string `json:"scheduled_for,omitempty"`
	PrescriptionID string `json:"prescription_id,omitempty"`
	MedicineName   string `json:"medicine_name,omitempty"`
	Error          string `json:"error,omitempty"`
}

// CallSummaryResponse is returned by both scheduling endpoints.
type CallSummaryResponse struct {
	Message     string       `json:"message"`
	CallResults []CallResult `json:"call_results,omitempty"`
}
