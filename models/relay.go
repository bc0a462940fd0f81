package models

// Relay operations.
const (
	OperationImage    = "image"
	OperationProfile  = "profile"
	OperationOrder    = "order"
	OperationContract = "contract"
)

// Relay outcomes.
const (
	OutcomeRelayed = "relayed"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// TimeLayout is a fixed-width UTC timestamp, so Relay.Time sorts as a string.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Relay is a journal entry for one relay attempt. Payloads are never stored.
type Relay struct {
	ID        string
	Operation string
	Target    string
	Outcome   string
	Time      string // TimeLayout, UTC
	Expiry    string // RFC1123
}
