package schema

// EventTypeTable represents the 'core.eventtype' table
type EventTypeTable struct {
	Table    string
	ID       string
	Name     string
	IsActive string
}

// EventType is the schema definition for core.eventtype
var EventType = EventTypeTable{
	Table:    "core.eventtype",
	ID:       "id",
	Name:     "name",
	IsActive: "isactive",
}

// Columns returns all standard column names
func (t EventTypeTable) Columns() []string {
	return []string{t.ID, t.Name, t.IsActive}
}
