package domain

import "time"

// DefaultSavedList es la lista asignada cuando el usuario no indica ninguna.
const DefaultSavedList = "Saved"

// SavedQuestion es el marcador de un usuario sobre una pregunta del catálogo.
// Existe a lo sumo un registro por par (user_id, question_id).
type SavedQuestion struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Lists      []string  `json:"lists"`
	Question   *Question `json:"question,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
