package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Duration stores a cooking time. It speaks the "HH:MM:SS" wire format
// used by the API and forms, and persists as whole seconds.
type Duration time.Duration

// ParseDuration parses the "HH:MM:SS" wire format.
func ParseDuration(s string) (Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid duration %q: expected HH:MM:SS", s)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid duration %q: expected HH:MM:SS", s)
	}
	return Duration(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second), nil
}

// String renders the duration as "HH:MM:SS".
func (d Duration) String() string {
	total := int64(time.Duration(d) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer, storing whole seconds.
func (d Duration) Value() (driver.Value, error) {
	return int64(time.Duration(d) / time.Second), nil
}

// Scan implements sql.Scanner.
func (d *Duration) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*d = Duration(time.Duration(v) * time.Second)
		return nil
	case float64:
		*d = Duration(time.Duration(v) * time.Second)
		return nil
	case nil:
		*d = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Duration", src)
	}
}

// GormDataType tells GORM to persist the duration as an integer column.
func (Duration) GormDataType() string { return "bigint" }
