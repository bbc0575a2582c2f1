package attendance

import "time"

// Attendance records that a person checked in to an event.
type Attendance struct {
	ID          int64     `json:"id"`
	CheckedInAt time.Time `json:"checked_in_at"`
	Note        string    `json:"note"`
	EventID     int64     `json:"event_id"`
	EventName   string    `json:"event_name"`
	PersonID    int64     `json:"person_id"`
	PersonName  string    `json:"person_name"`
}

// Input is the writable shape of an attendance record.
//
// CheckedInAt is RFC 3339 and defaults to the time of the request.
type Input struct {
	ID          *int64     `json:"id"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	Note        string     `json:"note"`
	EventID     int64      `json:"event_id"`
	PersonID    int64      `json:"person_id"`
}

// Filter narrows a listing.
type Filter struct {
	EventID *int64
}

const (
	FieldNote     = "note"
	FieldEventID  = "event_id"
	FieldPersonID = "person_id"
)

const MaxNoteLen = 500
