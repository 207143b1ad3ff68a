package domain

import "time"

// Thread es un hilo de discusión creado por un usuario.
type Thread struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Tags         []string  `json:"tags,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment pertenece a un hilo; el orden de creación es el orden de lectura.
type Comment struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
