package entity

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	assert.Nil(t, DateOf(sql.NullTime{}))
	assert.Nil(t, DateArg(nil))

	d := DateOf(sql.NullTime{Time: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Valid: true})
	require.NotNil(t, d)
	assert.Equal(t, "2024-02-29", DateArg(d))

	b, err := json.Marshal(Employee{FullName: "Ann", HireDate: d})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"HireDate":"2024-02-29"`)
	assert.Contains(t, string(b), `"DateOfBirth":null`)
}

func TestNullableScans(t *testing.T) {
	assert.Nil(t, StringOf(sql.NullString{}))
	assert.Nil(t, Int64Of(sql.NullInt64{}))

	s := StringOf(sql.NullString{String: "active", Valid: true})
	require.NotNil(t, s)
	assert.Equal(t, "active", *s)

	n := Int64Of(sql.NullInt64{Int64: 0, Valid: true})
	require.NotNil(t, n)
	assert.Zero(t, *n)
}
