package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// WallClockLayout is the wire and storage format for appointment times.
// Times are naive local wall-clock values: no offset is persisted and no
// UTC conversion is ever applied, so the string a client sends is the
// string it gets back.
const WallClockLayout = "2006-01-02 15:04:05"

var wallClockParseLayouts = []string{
	WallClockLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// WallClock is a timestamp persisted and serialized as a naive local
// date-time string.
type WallClock struct {
	time.Time
}

// NewWallClock builds a WallClock from t, dropping sub-second precision
// and any zone information beyond the local wall-clock reading.
func NewWallClock(t time.Time) WallClock {
	return WallClock{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)}
}

// ParseWallClock parses a client-supplied date-time string.
func ParseWallClock(s string) (WallClock, error) {
	for _, layout := range wallClockParseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return WallClock{t}, nil
		}
	}
	return WallClock{}, fmt.Errorf("unparsable date-time %q", s)
}

func (w WallClock) String() string {
	return w.Format(WallClockLayout)
}

// DateString returns the calendar-date component, used for inclusive
// date-range filtering.
func (w WallClock) DateString() string {
	return w.Format("2006-01-02")
}

func (w WallClock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.Format(WallClockLayout) + `"`), nil
}

func (w *WallClock) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*w = WallClock{}
		return nil
	}
	parsed, err := ParseWallClock(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Value stores the wall-clock string; the column is a plain timestamp
// without time zone.
func (w WallClock) Value() (driver.Value, error) {
	return w.Format(WallClockLayout), nil
}

func (w *WallClock) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WallClock{}
		return nil
	case time.Time:
		// Re-home the naive reading in the local zone without shifting it.
		*w = WallClock{time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), 0, time.Local)}
		return nil
	case []byte:
		parsed, err := ParseWallClock(string(v))
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	case string:
		parsed, err := ParseWallClock(v)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WallClock", src)
	}
}
