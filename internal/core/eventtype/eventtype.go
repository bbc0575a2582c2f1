package eventtype

// EventType classifies events (conference, workshop, concert...).
type EventType struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Input is the writable shape of an event type.
//
// ID is optional on update and must match the path id when present.
// IsActive defaults to true when omitted.
type Input struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

const (
	FieldName = "name"
)

// MaxNameLen matches the core.eventtype.name column.
const MaxNameLen = 100
