package domain

import "time"

const (
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusAbandoned  = "abandoned"
)

const (
	InterviewTypeTechnical  = "technical"
	InterviewTypeBehavioral = "behavioral"
	InterviewTypeMixed      = "mixed"
)

const (
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
)

// InterviewSession es un intento de entrevista simulada. Tras pasar a un
// estado terminal (completed/abandoned) el registro no se muta más.
type InterviewSession struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	Role                 string     `json:"role"`
	InterviewType        string     `json:"interview_type"`
	Seniority            string     `json:"seniority"`
	Status               string     `json:"status"`
	StartedAt            time.Time  `json:"started_at"`
	EndedAt              *time.Time `json:"ended_at,omitempty"`
	Responses            []Response `json:"responses"`
	OverallScore         *int       `json:"overall_score,omitempty"`
	OverallFeedback      string     `json:"overall_feedback,omitempty"`
	KeyStrengths         []string   `json:"key_strengths,omitempty"`
	DevelopmentAreas     []string   `json:"development_areas,omitempty"`
	RecommendedResources []string   `json:"recommended_resources,omitempty"`
	NextSteps            string     `json:"next_steps,omitempty"`
}

// SessionSummary es la vista de historial, sin el cuerpo de las respuestas.
type SessionSummary struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Role          string     `json:"role"`
	InterviewType string     `json:"interview_type"`
	Seniority     string     `json:"seniority"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	ResponseCount int        `json:"response_count"`
}

// Response es un intercambio pregunta/respuesta dentro de una sesión. No tiene
// identidad fuera de su sesión; el orden de inserción es el índice canónico.
type Response struct {
	Question         string           `json:"question"`
	ResponseText     string           `json:"response"`
	Feedback         string           `json:"feedback,omitempty"`
	Scores           Scores           `json:"scores"`
	NonVerbalMetrics NonVerbalMetrics `json:"non_verbal_metrics"`
	VoiceMetrics     VoiceMetrics     `json:"voice_metrics"`
	KeywordMatches   []string         `json:"keyword_matches,omitempty"`
}

type Scores struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
}

// NonVerbalMetrics usa 0 como centinela de "no medido"; ver SessionReport.
type NonVerbalMetrics struct {
	Confidence int `json:"confidence"`
	EyeContact int `json:"eye_contact"`
	Posture    int `json:"posture"`
}

type VoiceMetrics struct {
	Clarity     int            `json:"clarity"`
	Pace        int            `json:"pace"`
	Volume      int            `json:"volume"`
	FillerWords map[string]int `json:"filler_words,omitempty"`
}

// Terminal indica si la sesión ya no admite mutaciones.
func (s *InterviewSession) Terminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusAbandoned
}

func ValidInterviewType(t string) bool {
	switch t {
	case InterviewTypeTechnical, InterviewTypeBehavioral, InterviewTypeMixed:
		return true
	}
	return false
}

func ValidSeniority(s string) bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	}
	return false
}
