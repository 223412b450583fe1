package utils

import "time"

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// ValidDate reports whether s is a calendar date in "2006-01-02" form.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidSlot reports whether s is a time of day in 24h "15:04" form.
func ValidSlot(s string) bool {
	_, err := time.Parse(SlotLayout, s)
	return err == nil
}
