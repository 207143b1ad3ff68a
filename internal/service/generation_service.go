package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/llm"
)

var (
	ErrGenerationInput     = errors.New("invalid generation input")
	ErrGenerationUpstream  = errors.New("question generation upstream failed")
	ErrGenerationMalformed = errors.New("question generation returned malformed output")
)

const (
	minGeneratedQuestions = 1
	maxGeneratedQuestions = 20
)

// GenerateInput describe la entrevista para la que se piden preguntas.
type GenerateInput struct {
	Role               string
	InterviewType      string
	Seniority          string
	Technologies       []string
	CompanyValues      []string
	CustomRequirements string
	Count              int
}

// GenerationService pide preguntas al colaborador LLM. Solo valida la forma
// de la salida (largo de lista, campos string requeridos), nunca el contenido.
type GenerationService struct {
	logger *zap.Logger
	client llm.LLMClient
}

func NewGenerationService(logger *zap.Logger, client llm.LLMClient) *GenerationService {
	return &GenerationService{
		logger: logger,
		client: client,
	}
}

func (s *GenerationService) GenerateQuestions(ctx context.Context, input GenerateInput) ([]domain.GeneratedQuestion, error) {
	if strings.TrimSpace(input.Role) == "" {
		return nil, ErrGenerationInput
	}
	if !domain.ValidInterviewType(input.InterviewType) {
		return nil, ErrGenerationInput
	}
	if !domain.ValidSeniority(input.Seniority) {
		return nil, ErrGenerationInput
	}
	if input.Count < minGeneratedQuestions || input.Count > maxGeneratedQuestions {
		return nil, ErrGenerationInput
	}

	raw, err := s.client.Generate(ctx, buildGenerationPrompt(input))
	if err != nil {
		s.logger.Warn("llm generation failed", zap.Error(err), zap.String("role", input.Role))
		return nil, ErrGenerationUpstream
	}

	questions, err := parseGeneratedQuestions(raw, input.Count)
	if err != nil {
		s.logger.Warn("llm generation malformed", zap.Error(err))
		return nil, ErrGenerationMalformed
	}

	return questions, nil
}

func buildGenerationPrompt(input GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d interview questions for a %s %s position.\n", input.Count, input.Seniority, input.Role)
	fmt.Fprintf(&b, "Interview type: %s.\n", input.InterviewType)
	if len(input.Technologies) > 0 {
		fmt.Fprintf(&b, "Relevant technologies: %s.\n", strings.Join(input.Technologies, ", "))
	}
	if len(input.CompanyValues) > 0 {
		fmt.Fprintf(&b, "Company values to probe for: %s.\n", strings.Join(input.CompanyValues, ", "))
	}
	if req := strings.TrimSpace(input.CustomRequirements); req != "" {
		fmt.Fprintf(&b, "Additional requirements: %s\n", req)
	}
	b.WriteString(`Respond with ONLY a JSON array, no markdown and no prose. Each element:
{"question": "...", "rationale": "...", "expected_answer": "...", "type": "technical" | "behavioral" | "system-design"}`)
	return b.String()
}

// parseGeneratedQuestions valida la forma estructural de la salida del LLM:
// arreglo JSON del largo pedido con los campos string requeridos no vacíos.
func parseGeneratedQuestions(raw string, want int) ([]domain.GeneratedQuestion, error) {
	payload := extractFirstJSONArray(raw)
	if payload == "" {
		return nil, errors.New("no json array in response")
	}

	var questions []domain.GeneratedQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, errors.New("empty question list")
	}
	if len(questions) > want {
		questions = questions[:want]
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d: empty question text", i)
		}
		if strings.TrimSpace(q.ExpectedAnswer) == "" {
			return nil, fmt.Errorf("question %d: empty expected answer", i)
		}
		if !domain.ValidQuestionType(q.Type) {
			return nil, fmt.Errorf("question %d: unknown type %q", i, q.Type)
		}
	}

	return questions, nil
}
