package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalTime is a nullable timestamp that remembers whether it was present
// in a JSON document at all. Absent leaves Set false; an explicit null sets
// Set with a nil Time.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	t = t.UTC()
	o.Time = &t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Time)
}

// NewOptionalTime returns a present OptionalTime holding t.
func NewOptionalTime(t *time.Time) OptionalTime {
	return OptionalTime{Set: true, Time: t}
}
