package entities

import "time"

// GenerationStatus is the outcome of a quiz generation request.
type GenerationStatus string

const (
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFailed    GenerationStatus = "failed"
)

// GenerationRecord journals one generate request sent to the quiz API.
type GenerationRecord struct {
	ID          int64
	ChatID      int64
	URL         string
	Status      GenerationStatus
	Reason      string // failure reason shown to the user, empty on success
	Duration    time.Duration
	RequestedAt time.Time
}

// NewGenerationRecord creates a record for a request started at requestedAt.
func NewGenerationRecord(chatID int64, url string, requestedAt time.Time) *GenerationRecord {
	return &GenerationRecord{
		ChatID:      chatID,
		URL:         url,
		RequestedAt: requestedAt,
	}
}

// Succeed marks the request as successful.
func (r *GenerationRecord) Succeed(finishedAt time.Time) {
	r.Status = GenerationSucceeded
	r.Duration = finishedAt.Sub(r.RequestedAt)
}

// Fail marks the request as failed with a human-readable reason.
func (r *GenerationRecord) Fail(reason string, finishedAt time.Time) {
	r.Status = GenerationFailed
	r.Reason = reason
	r.Duration = finishedAt.Sub(r.RequestedAt)
}
