package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"asha-platform/internal/llm"
)

const validGenerationOutput = `[
	{"question": "Explain goroutine scheduling", "rationale": "core runtime knowledge", "expected_answer": "M:N scheduling over OS threads", "type": "technical"},
	{"question": "Tell me about a conflict with a teammate", "rationale": "team fit", "expected_answer": "STAR-structured answer", "type": "behavioral"}
]`

func validGenerateInput(count int) GenerateInput {
	return GenerateInput{
		Role:          "Backend Engineer",
		InterviewType: "mixed",
		Seniority:     "mid",
		Count:         count,
	}
}

func TestGenerationServiceHappyPath(t *testing.T) {
	svc := NewGenerationService(zap.NewNop(), &llm.MockClient{Response: validGenerationOutput})

	questions, err := svc.GenerateQuestions(context.Background(), validGenerateInput(2))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Type != "technical" || questions[1].Type != "behavioral" {
		t.Fatalf("unexpected types: %+v", questions)
	}
}

func TestGenerationServiceStripsProse(t *testing.T) {
	wrapped := "Sure! Here are your questions:\n```json\n" + validGenerationOutput + "\n```\nGood luck!"
	svc := NewGenerationService(zap.NewNop(), &llm.MockClient{Response: wrapped})

	questions, err := svc.GenerateQuestions(context.Background(), validGenerateInput(2))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerationServiceInputValidation(t *testing.T) {
	svc := NewGenerationService(zap.NewNop(), &llm.MockClient{Response: validGenerationOutput})
	ctx := context.Background()

	cases := []GenerateInput{
		{Role: "", InterviewType: "technical", Seniority: "mid", Count: 3},
		{Role: "Backend Engineer", InterviewType: "casual", Seniority: "mid", Count: 3},
		{Role: "Backend Engineer", InterviewType: "technical", Seniority: "staff", Count: 3},
		{Role: "Backend Engineer", InterviewType: "technical", Seniority: "mid", Count: 0},
		{Role: "Backend Engineer", InterviewType: "technical", Seniority: "mid", Count: 50},
	}
	for i, input := range cases {
		if _, err := svc.GenerateQuestions(ctx, input); !errors.Is(err, ErrGenerationInput) {
			t.Fatalf("case %d: expected ErrGenerationInput, got %v", i, err)
		}
	}
}

func TestGenerationServiceUpstreamFailure(t *testing.T) {
	svc := NewGenerationService(zap.NewNop(), &llm.MockClient{Err: errors.New("boom")})

	if _, err := svc.GenerateQuestions(context.Background(), validGenerateInput(2)); !errors.Is(err, ErrGenerationUpstream) {
		t.Fatalf("expected ErrGenerationUpstream, got %v", err)
	}
}

func TestGenerationServiceMalformedOutput(t *testing.T) {
	cases := []string{
		"no json at all",
		`{"question": "not an array"}`,
		`[]`,
		`[{"question": "", "expected_answer": "x", "type": "technical"}]`,
		`[{"question": "q", "expected_answer": "", "type": "technical"}]`,
		`[{"question": "q", "expected_answer": "a", "type": "weird"}]`,
	}

	for i, raw := range cases {
		svc := NewGenerationService(zap.NewNop(), &llm.MockClient{Response: raw})
		if _, err := svc.GenerateQuestions(context.Background(), validGenerateInput(2)); !errors.Is(err, ErrGenerationMalformed) {
			t.Fatalf("case %d: expected ErrGenerationMalformed, got %v", i, err)
		}
	}
}

func TestExtractFirstJSONArray(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`[1, 2, 3]`, `[1, 2, 3]`},
		{`prefix [1, [2], 3] suffix`, `[1, [2], 3]`},
		{`["bracket ] in string"]`, `["bracket ] in string"]`},
		{`no array here`, ""},
		{`[unbalanced`, ""},
	}

	for _, tc := range cases {
		if got := extractFirstJSONArray(tc.input); got != tc.want {
			t.Fatalf("extractFirstJSONArray(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
