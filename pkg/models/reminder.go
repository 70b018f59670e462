package models

import "fmt"

// Reminder represents a single take-medicine alert time
type Reminder struct {
	ID        string `json:"id"`         // Unique identifier (UUID)
	Hour      int    `json:"hour"`       // 0-23
	Minute    int    `json:"minute"`     // 0-59
	Taken     bool   `json:"taken"`      // User-toggled "taken today" annotation
	FiredDate string `json:"fired_date"` // Day key of the last fire, empty if never fired
}

// TimeOfDay renders the reminder time as zero-padded HH:MM.
func (r Reminder) TimeOfDay() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Matches reports whether the reminder is set for the given hour and minute.
func (r Reminder) Matches(hour, minute int) bool {
	return r.Hour == hour && r.Minute == minute
}
