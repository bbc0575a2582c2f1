package person

import (
	"cloud.google.com/go/civil"

	"github.com/taibuivan/eventos/pkg/gender"
)

// Person is someone who can attend events. Persons are not users.
type Person struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	BirthDate *civil.Date   `json:"birth_date"`
	Gender    gender.Gender `json:"gender"`
	IsActive  bool          `json:"is_active"`
}

// Input is the writable shape of a person.
//
// ID is optional on update and must match the path id when present.
// Gender defaults to Other and IsActive to true.
type Input struct {
	ID        *int64         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	BirthDate *civil.Date    `json:"birth_date"`
	Gender    *gender.Gender `json:"gender"`
	IsActive  *bool          `json:"is_active"`
}

const (
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldBirthDate = "birth_date"
	FieldGender    = "gender"
)

const (
	MaxNameLen  = 150
	MaxPhoneLen = 30
)
