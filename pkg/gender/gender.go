// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package gender defines the gender codes stored for persons and users.
//
// Values travel as integers on the wire and in the database (0, 1, 2).
package gender

// Gender is a stored gender code.
type Gender int

const (
	Male   Gender = 0
	Female Gender = 1
	Other  Gender = 2
)

// Valid reports whether g is one of the known codes.
func (g Gender) Valid() bool {
	return g >= Male && g <= Other
}

// String returns a lower-case label.
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}
