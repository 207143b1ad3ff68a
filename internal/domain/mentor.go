package domain

import "time"

// Mentor proviene del job de ingesta externo; solo lectura en este servicio.
type Mentor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Headline     string    `json:"headline,omitempty"`
	Company      string    `json:"company,omitempty"`
	Expertise    []string  `json:"expertise,omitempty"`
	YearsOfExp   int       `json:"years_of_experience"`
	HourlyRate   int       `json:"hourly_rate"`
	Availability []string  `json:"availability,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Booking reserva un slot de un mentor; único por (mentor_id, slot).
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MentorID  string    `json:"mentor_id"`
	Slot      string    `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
}
