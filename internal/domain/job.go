package domain

import "time"

const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// Job es una oferta del tablón de empleos.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	ApplyURL    string    `json:"apply_url,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// JobFilter compone restricciones AND; campos vacíos o "all" son comodines.
type JobFilter struct {
	Search   string
	Location string
	Type     string
	Company  string
}

// JobPage es el resultado paginado del tablón.
type JobPage struct {
	Items      []Job `json:"items"`
	TotalCount int   `json:"total_count"`
	PageCount  int   `json:"page_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}
