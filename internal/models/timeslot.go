package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TimeSlot is a half-open [start, end) time-of-day window in minutes since
// midnight. Windows never span midnight: start is strictly before end.
type TimeSlot struct {
	Start int
	End   int
}

// ParseTimeSlot parses a "HH:MM-HH:MM" 24-hour window. Every character is
// checked positionally: digits and separators must sit exactly where the
// format puts them, so shifted or padded variants are rejected rather than
// reinterpreted. Hours run 00-23; a window ending at midnight ("24:00")
// cannot be expressed, which keeps every window inside a single day.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	if len(raw) != 11 || raw[2] != ':' || raw[5] != '-' || raw[8] != ':' {
		return TimeSlot{}, fmt.Errorf("invalid time window %q: expected HH:MM-HH:MM", raw)
	}
	for _, i := range []int{0, 1, 3, 4, 6, 7, 9, 10} {
		if raw[i] < '0' || raw[i] > '9' {
			return TimeSlot{}, fmt.Errorf("invalid time window %q: expected HH:MM-HH:MM", raw)
		}
	}
	digit := func(i int) int { return int(raw[i] - '0') }
	sh, sm := digit(0)*10+digit(1), digit(3)*10+digit(4)
	eh, em := digit(6)*10+digit(7), digit(9)*10+digit(10)
	if sh > 23 || eh > 23 || sm > 59 || em > 59 {
		return TimeSlot{}, fmt.Errorf("invalid time window %q: out of range", raw)
	}
	slot := TimeSlot{Start: sh*60 + sm, End: eh*60 + em}
	if slot.Start >= slot.End {
		return TimeSlot{}, fmt.Errorf("invalid time window %q: start must precede end", raw)
	}
	return slot, nil
}

// Overlaps reports whether two half-open windows intersect.
func (t TimeSlot) Overlaps(o TimeSlot) bool {
	return t.Start < o.End && o.Start < t.End
}

// String renders the canonical HH:MM-HH:MM form.
func (t TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.Start/60, t.Start%60, t.End/60, t.End%60)
}

// Value implements driver.Valuer so the slot persists as its textual form.
func (t TimeSlot) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *TimeSlot) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeSlot", src)
	}
	slot, err := ParseTimeSlot(raw)
	if err != nil {
		return err
	}
	*t = slot
	return nil
}

// MarshalJSON renders the slot as its wire string.
func (t TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses the wire string form.
func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	slot, err := ParseTimeSlot(raw)
	if err != nil {
		return err
	}
	*t = slot
	return nil
}
