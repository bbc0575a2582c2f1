package schema

// EventTable represents the 'core.event' table
type EventTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Address     string
	Cost        string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	EventTypeID string
	OwnerID     string
	IsActive    string
}

// Event is the schema definition for core.event
var Event = EventTable{
	Table:       "core.event",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Address:     "address",
	Cost:        "cost",
	StartDate:   "startdate",
	EndDate:     "enddate",
	StartTime:   "starttime",
	EndTime:     "endtime",
	EventTypeID: "eventtypeid",
	OwnerID:     "ownerid",
	IsActive:    "isactive",
}

// Columns returns all standard column names
func (t EventTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.Address, t.Cost, t.StartDate, t.EndDate,
		t.StartTime, t.EndTime, t.EventTypeID, t.OwnerID, t.IsActive,
	}
}
