package llm

import "context"

// LLMClient define la interfaz hacia el generador de preguntas externo.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
