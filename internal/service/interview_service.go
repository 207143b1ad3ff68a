package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionNotOwned      = errors.New("session not owned by user")
	ErrSessionTerminal      = errors.New("session already finished")
	ErrInvalidInterviewType = errors.New("invalid interview type")
	ErrInvalidSeniority     = errors.New("invalid seniority")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidResponse      = errors.New("invalid response")
	ErrScoreOutOfRange      = errors.New("score out of range")
)

// InterviewService coordina el ciclo de vida de las sesiones de entrevista:
// in-progress → completed | abandoned, ambos terminales.
type InterviewService struct {
	logger   *zap.Logger
	sessions repository.InterviewRepository
}

func NewInterviewService(logger *zap.Logger, sessions repository.InterviewRepository) *InterviewService {
	return &InterviewService{
		logger:   logger,
		sessions: sessions,
	}
}

// Start crea una sesión in-progress sin respuestas.
func (s *InterviewService) Start(ctx context.Context, userID, role, interviewType, seniority string) (domain.InterviewSession, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return domain.InterviewSession{}, ErrInvalidRole
	}
	if !domain.ValidInterviewType(interviewType) {
		return domain.InterviewSession{}, ErrInvalidInterviewType
	}
	if !domain.ValidSeniority(seniority) {
		return domain.InterviewSession{}, ErrInvalidSeniority
	}

	session := domain.InterviewSession{
		ID:            uuid.NewString(),
		UserID:        userID,
		Role:          role,
		InterviewType: interviewType,
		Seniority:     seniority,
		Status:        domain.SessionStatusInProgress,
		StartedAt:     time.Now().UTC(),
		Responses:     []domain.Response{},
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.InterviewSession{}, err
	}

	return session, nil
}

// AppendResponse agrega una respuesta al final de la sesión. El repositorio
// hace el append como update condicional sobre status, así dos appends
// concurrentes nunca se pierden ni pasan por alto un estado terminal.
func (s *InterviewService) AppendResponse(ctx context.Context, sessionID string, response domain.Response) (domain.InterviewSession, error) {
	if err := validateResponse(response); err != nil {
		return domain.InterviewSession{}, err
	}

	updated, err := s.sessions.AppendResponse(ctx, sessionID, response)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.InterviewSession{}, err
	}
	return domain.InterviewSession{}, s.resolveConditionalMiss(ctx, sessionID)
}

// FinishInput agrupa los campos de cierre aportados por el cliente.
type FinishInput struct {
	OverallScore         *int
	OverallFeedback      string
	KeyStrengths         []string
	DevelopmentAreas     []string
	RecommendedResources []string
	NextSteps            string
}

// Finish marca la sesión como completed y fija los campos de cierre.
func (s *InterviewService) Finish(ctx context.Context, sessionID string, input FinishInput) (domain.InterviewSession, error) {
	if input.OverallScore != nil && (*input.OverallScore < 0 || *input.OverallScore > 100) {
		return domain.InterviewSession{}, ErrScoreOutOfRange
	}

	updated, err := s.sessions.Finish(ctx, sessionID, time.Now().UTC(), repository.SessionFinal{
		OverallScore:         input.OverallScore,
		OverallFeedback:      input.OverallFeedback,
		KeyStrengths:         input.KeyStrengths,
		DevelopmentAreas:     input.DevelopmentAreas,
		RecommendedResources: input.RecommendedResources,
		NextSteps:            input.NextSteps,
	})
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.InterviewSession{}, err
	}
	return domain.InterviewSession{}, s.resolveConditionalMiss(ctx, sessionID)
}

// Abandon marca la sesión como abandoned; solo válido desde in-progress.
func (s *InterviewService) Abandon(ctx context.Context, sessionID string) (domain.InterviewSession, error) {
	updated, err := s.sessions.Abandon(ctx, sessionID, time.Now().UTC())
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.InterviewSession{}, err
	}
	return domain.InterviewSession{}, s.resolveConditionalMiss(ctx, sessionID)
}

// Get devuelve la sesión completa. La existencia se chequea antes que la
// propiedad: un id ajeno existente da ErrSessionNotOwned, uno inexistente
// ErrSessionNotFound.
func (s *InterviewService) Get(ctx context.Context, sessionID, requestingUserID string) (domain.InterviewSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.InterviewSession{}, ErrSessionNotFound
		}
		return domain.InterviewSession{}, err
	}
	if session.UserID != requestingUserID {
		return domain.InterviewSession{}, ErrSessionNotOwned
	}
	return session, nil
}

// Report devuelve la sesión junto con su resumen agregado.
func (s *InterviewService) Report(ctx context.Context, sessionID, requestingUserID string) (domain.InterviewSession, SessionReport, error) {
	session, err := s.Get(ctx, sessionID, requestingUserID)
	if err != nil {
		return domain.InterviewSession{}, SessionReport{}, err
	}
	return session, SummarizeSession(session), nil
}

func (s *InterviewService) ListForUser(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// resolveConditionalMiss distingue por qué un update condicional no matcheó
// ninguna fila: la sesión no existe o ya es terminal.
func (s *InterviewService) resolveConditionalMiss(ctx context.Context, sessionID string) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}
	if session.Terminal() {
		return ErrSessionTerminal
	}
	// Fila in-progress visible ahora implica que fue creada después del
	// update condicional: para ese update el id no existía.
	return ErrSessionNotFound
}

func validateResponse(response domain.Response) error {
	if strings.TrimSpace(response.Question) == "" || strings.TrimSpace(response.ResponseText) == "" {
		return ErrInvalidResponse
	}
	percentages := []int{
		response.Scores.Technical,
		response.Scores.Communication,
		response.NonVerbalMetrics.Confidence,
		response.NonVerbalMetrics.EyeContact,
		response.NonVerbalMetrics.Posture,
		response.VoiceMetrics.Clarity,
		response.VoiceMetrics.Pace,
		response.VoiceMetrics.Volume,
	}
	for _, p := range percentages {
		if p < 0 || p > 100 {
			return ErrScoreOutOfRange
		}
	}
	return nil
}
