// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
)

// # DATE columns

// DateValue encodes a calendar date for a DATE column. Zero dates become NULL.
func DateValue(date civil.Date) pgtype.Date {
	if date.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: date.In(time.UTC), Valid: true}
}

// NullableDate encodes an optional calendar date.
func NullableDate(date *civil.Date) pgtype.Date {
	if date == nil {
		return pgtype.Date{}
	}
	return DateValue(*date)
}

// DateFrom decodes a DATE column. NULL becomes the zero date.
func DateFrom(value pgtype.Date) civil.Date {
	if !value.Valid {
		return civil.Date{}
	}
	return civil.DateOf(value.Time)
}

// NullableDateFrom decodes a nullable DATE column.
func NullableDateFrom(value pgtype.Date) *civil.Date {
	if !value.Valid {
		return nil
	}
	date := civil.DateOf(value.Time)
	return &date
}

// # TIME columns

// TimeValue encodes a wall-clock time for a TIME column.
func TimeValue(clock civil.Time) pgtype.Time {
	microseconds := int64(clock.Hour)*int64(time.Hour/time.Microsecond) +
		int64(clock.Minute)*int64(time.Minute/time.Microsecond) +
		int64(clock.Second)*int64(time.Second/time.Microsecond) +
		int64(clock.Nanosecond)/int64(time.Microsecond/time.Nanosecond)

	return pgtype.Time{Microseconds: microseconds, Valid: true}
}

// TimeFrom decodes a TIME column. NULL becomes midnight.
func TimeFrom(value pgtype.Time) civil.Time {
	if !value.Valid {
		return civil.Time{}
	}

	remaining := time.Duration(value.Microseconds) * time.Microsecond
	hour := remaining / time.Hour
	remaining -= hour * time.Hour
	minute := remaining / time.Minute
	remaining -= minute * time.Minute
	second := remaining / time.Second
	remaining -= second * time.Second

	return civil.Time{
		Hour:       int(hour),
		Minute:     int(minute),
		Second:     int(second),
		Nanosecond: int(remaining),
	}
}
