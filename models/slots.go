package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// TimeSlots stores a doctor's slot set for one date as JSONB.
type TimeSlots []string

// Value implements the driver.Valuer interface
func (t TimeSlots) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (t *TimeSlots) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal TimeSlots: unsupported type %T", value)
	}

	return json.Unmarshal(data, t)
}

// Normalize deduplicates and sorts the slot set.
func (t TimeSlots) Normalize() TimeSlots {
	seen := make(map[string]struct{}, len(t))
	out := make(TimeSlots, 0, len(t))
	for _, s := range t {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether slot is in the set.
func (t TimeSlots) Contains(slot string) bool {
	for _, s := range t {
		if s == slot {
			return true
		}
	}
	return false
}
