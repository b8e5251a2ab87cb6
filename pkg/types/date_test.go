package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshalAcceptsBothFormats(t *testing.T) {
	cases := map[string]time.Time{
		`"2025-01-15"`:                time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		`"2025-01-15T09:30:00Z"`:      time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		`"2025-01-15T09:30:00+03:00"`: time.Date(2025, 1, 15, 6, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, d.Equal(want), raw)
	}
}

func TestDateUnmarshalNullAndEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	var p *Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Nil(t, p)
	assert.Nil(t, p.TimePtr())
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	for _, raw := range []string{`"15.01.2025"`, `"2025-13-01"`, `20250115`, `"tomorrow"`} {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(raw), &d), raw)
	}
}

func TestDateMarshalsAsTime(t *testing.T) {
	d := DateOf(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-15T00:00:00Z"`, string(out))

	tp := d.TimePtr()
	require.NotNil(t, tp)
	assert.True(t, tp.Equal(d.Time))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)
}
