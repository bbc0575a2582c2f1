package event

import (
	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
)

// Event is a scheduled happening of a given type, optionally owned by a user.
//
// Dates travel as "YYYY-MM-DD" and times as "HH:MM:SS". Cost is a fixed-point
// amount with two decimals.
type Event struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Address       string         `json:"address"`
	Cost          pgtype.Numeric `json:"cost"`
	StartDate     civil.Date     `json:"start_date"`
	EndDate       civil.Date     `json:"end_date"`
	StartTime     civil.Time     `json:"start_time"`
	EndTime       civil.Time     `json:"end_time"`
	EventTypeID   int64          `json:"event_type_id"`
	EventTypeName string         `json:"event_type_name"`
	OwnerID       *int64         `json:"user_id"`
	OwnerUsername *string        `json:"username"`
	IsActive      bool           `json:"is_active"`
}

// Input is the writable shape of an event.
//
// ID is optional on update and must match the path id when present. OwnerID
// defaults to the caller on create. IsActive defaults to true.
type Input struct {
	ID          *int64         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Cost        pgtype.Numeric `json:"cost"`
	StartDate   civil.Date     `json:"start_date"`
	EndDate     civil.Date     `json:"end_date"`
	StartTime   civil.Time     `json:"start_time"`
	EndTime     civil.Time     `json:"end_time"`
	EventTypeID int64          `json:"event_type_id"`
	OwnerID     *int64         `json:"user_id"`
	IsActive    *bool          `json:"is_active"`
}

// Filter narrows a listing.
type Filter struct {
	OwnerID *int64 // Only events owned by this user
}

const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldCost        = "cost"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldEventTypeID = "event_type_id"
	FieldOwnerID     = "user_id"
)

// Column limits of core.event.
const (
	MaxNameLen    = 150
	MaxAddressLen = 250

	// MaxCost is the first amount that no longer fits NUMERIC(18,2).
	MaxCost = 1e16
)
