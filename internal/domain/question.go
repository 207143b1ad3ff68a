package domain

import "time"

const (
	QuestionTypeTechnical    = "technical"
	QuestionTypeBehavioral   = "behavioral"
	QuestionTypeSystemDesign = "system-design"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question es una entrada del catálogo; solo lectura para usuarios finales.
type Question struct {
	ID             string    `json:"id"`
	Question       string    `json:"question"`
	ExpectedAnswer string    `json:"expected_answer"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	Company        string    `json:"company"`
	Topics         []string  `json:"topics,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionFilter compone restricciones AND; campos vacíos o "all" son comodines.
type QuestionFilter struct {
	Search     string
	Type       string
	Category   string
	Difficulty string
	Company    string
}

// QuestionPage es el resultado paginado de una consulta al catálogo.
type QuestionPage struct {
	Items      []Question `json:"items"`
	TotalCount int        `json:"total_count"`
	PageCount  int        `json:"page_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeTechnical, QuestionTypeBehavioral, QuestionTypeSystemDesign:
		return true
	}
	return false
}
