package events

import "time"

const (
	TypeAnalyze    = "analyze"
	TypeLookup     = "lookup"
	TypeSelect     = "select"
	TypeBack       = "back"
	TypeExport     = "export"
	TypeLiveOpened = "live_opened"
	TypeLiveClosed = "live_closed"
)

type Event struct {
	Type      string    `json:"type"`             // one of the Type* constants
	Flight    string    `json:"flight,omitempty"` // flight number the action concerned
	Detail    string    `json:"detail,omitempty"` // route label or mock flight id
	Timestamp time.Time `json:"timestamp"`
}
