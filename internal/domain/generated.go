package domain

// GeneratedQuestion es la salida del generador LLM; solo se valida su forma,
// nunca el contenido.
type GeneratedQuestion struct {
	Question       string `json:"question"`
	Rationale      string `json:"rationale"`
	ExpectedAnswer string `json:"expected_answer"`
	Type           string `json:"type"`
}
