package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	for _, bad := range []string{"", "9:30:00", "25:00", "09:61", "morning"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		ts   TimeString
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := tt.ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("nope").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Конец суток допустим как граница
	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-20)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("09:15"))
}

func TestTimeString_At(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	date := time.Date(2026, 9, 10, 17, 45, 12, 0, loc)

	got, err := TimeString("09:30").At(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 10, 9, 30, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Колонки TIME приходят с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:15:59")))
	assert.Equal(t, TimeString("14:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 10, 11, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	_, err = TimeString("junk").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_JSON(t *testing.T) {
	data, err := json.Marshal(TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, `"09:30"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"18:45"`), &ts))
	assert.Equal(t, TimeString("18:45"), ts)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}
