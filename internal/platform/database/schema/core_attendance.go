package schema

// AttendanceTable represents the 'core.attendance' table
type AttendanceTable struct {
	Table       string
	ID          string
	CheckedInAt string
	Note        string
	EventID     string
	PersonID    string
}

// Attendance is the schema definition for core.attendance
var Attendance = AttendanceTable{
	Table:       "core.attendance",
	ID:          "id",
	CheckedInAt: "checkedinat",
	Note:        "note",
	EventID:     "eventid",
	PersonID:    "personid",
}

// Columns returns all standard column names
func (t AttendanceTable) Columns() []string {
	return []string{t.ID, t.CheckedInAt, t.Note, t.EventID, t.PersonID}
}
