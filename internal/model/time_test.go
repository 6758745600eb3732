package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"space separator", "2026-09-15 14:30:00", "2026-09-15 14:30:00"},
		{"T separator", "2026-09-15T14:30:00", "2026-09-15 14:30:00"},
		{"no seconds", "2026-09-15 14:30", "2026-09-15 14:30:00"},
		{"T no seconds", "2026-09-15T14:30", "2026-09-15 14:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWallClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseWallClockRejectsGarbage(t *testing.T) {
	_, err := ParseWallClock("not a date")
	assert.Error(t, err)

	_, err = ParseWallClock("15/09/2026 14:30")
	assert.Error(t, err)
}

func TestWallClockJSONRoundTrip(t *testing.T) {
	w, err := ParseWallClock("2026-09-15 14:30:00")
	require.NoError(t, err)

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-15 14:30:00"`, string(data))

	var decoded WallClock
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(w.Time))
}

func TestWallClockScanKeepsWallClockReading(t *testing.T) {
	// A driver may hand back the timestamp in UTC. The reading must not
	// shift when re-homed into the local zone.
	src := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

	var w WallClock
	require.NoError(t, w.Scan(src))
	assert.Equal(t, "2026-09-15 14:30:00", w.String())
	assert.Equal(t, time.Local, w.Location())
}

func TestWallClockScanString(t *testing.T) {
	var w WallClock
	require.NoError(t, w.Scan([]byte("2026-09-15 14:30:00")))
	assert.Equal(t, "2026-09-15 14:30:00", w.String())
}

func TestWallClockValue(t *testing.T) {
	w, err := ParseWallClock("2026-09-15 14:30:00")
	require.NoError(t, err)

	v, err := w.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15 14:30:00", v)
}

func TestWallClockDateString(t *testing.T) {
	w, err := ParseWallClock("2026-09-15 23:59:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", w.DateString())
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.True(t, AppointmentStatusCompleted.Valid())
	assert.True(t, AppointmentStatusCancelled.Valid())
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("Done").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}
