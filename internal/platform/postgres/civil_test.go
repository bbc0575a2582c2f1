// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/eventos/internal/platform/postgres"
)

/*
TestDateConversion verifies DATE encoding in both directions.
*/
func TestDateConversion(t *testing.T) {
	date := civil.Date{Year: 2025, Month: 11, Day: 30}

	encoded := postgres.DateValue(date)
	assert.True(t, encoded.Valid)
	assert.Equal(t, date, postgres.DateFrom(encoded))

	// Zero and nil dates are NULL
	assert.False(t, postgres.DateValue(civil.Date{}).Valid)
	assert.False(t, postgres.NullableDate(nil).Valid)
	assert.Nil(t, postgres.NullableDateFrom(pgtype.Date{}))

	decoded := postgres.NullableDateFrom(encoded)
	if assert.NotNil(t, decoded) {
		assert.Equal(t, date, *decoded)
	}
}

/*
TestTimeConversion verifies TIME encoding in both directions.
*/
func TestTimeConversion(t *testing.T) {
	clock := civil.Time{Hour: 18, Minute: 45, Second: 30}

	encoded := postgres.TimeValue(clock)
	assert.Equal(t, int64(18*3600+45*60+30)*1_000_000, encoded.Microseconds)
	assert.Equal(t, clock, postgres.TimeFrom(encoded))

	assert.Equal(t, civil.Time{}, postgres.TimeFrom(pgtype.Time{}))
}
