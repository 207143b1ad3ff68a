package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asha-platform/internal/domain"
)

// SessionFinal agrupa los campos de cierre de una sesión.
type SessionFinal struct {
	OverallScore         *int
	OverallFeedback      string
	KeyStrengths         []string
	DevelopmentAreas     []string
	RecommendedResources []string
	NextSteps            string
}

// InterviewRepository define el contrato de persistencia para sesiones de
// entrevista. Las mutaciones de estado son updates condicionales sobre
// status='in-progress': una sola operación atómica de documento, nunca
// leer-y-escribir por separado.
type InterviewRepository interface {
	Create(ctx context.Context, session domain.InterviewSession) error
	GetByID(ctx context.Context, id string) (domain.InterviewSession, error)
	AppendResponse(ctx context.Context, sessionID string, response domain.Response) (domain.InterviewSession, error)
	Finish(ctx context.Context, sessionID string, endedAt time.Time, final SessionFinal) (domain.InterviewSession, error)
	Abandon(ctx context.Context, sessionID string, endedAt time.Time) (domain.InterviewSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SessionSummary, error)
}

// PgInterviewRepository implementa InterviewRepository usando pgxpool.
type PgInterviewRepository struct {
	pool *pgxpool.Pool
}

func NewPgInterviewRepository(pool *pgxpool.Pool) *PgInterviewRepository {
	return &PgInterviewRepository{pool: pool}
}

const sessionColumns = `id, user_id, role, interview_type, seniority, status, started_at, ended_at,
	responses, overall_score, overall_feedback, key_strengths, development_areas, recommended_resources, next_steps`

func (r *PgInterviewRepository) Create(ctx context.Context, session domain.InterviewSession) error {
	const query = `
		INSERT INTO interview_sessions (id, user_id, role, interview_type, seniority, status, started_at, responses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '[]')
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Role,
		session.InterviewType,
		session.Seniority,
		session.Status,
		session.StartedAt,
	)
	return err
}

func (r *PgInterviewRepository) GetByID(ctx context.Context, id string) (domain.InterviewSession, error) {
	query := "SELECT " + sessionColumns + " FROM interview_sessions WHERE id = $1"

	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.InterviewSession{}, err
	}
	return s, err
}

// AppendResponse agrega la respuesta al final del arreglo solo si la sesión
// sigue in-progress. Devuelve pgx.ErrNoRows cuando la condición no matchea;
// el servicio decide si eso es NotFound o Conflict.
func (r *PgInterviewRepository) AppendResponse(ctx context.Context, sessionID string, response domain.Response) (domain.InterviewSession, error) {
	payload, err := json.Marshal(response)
	if err != nil {
		return domain.InterviewSession{}, err
	}

	query := `
		UPDATE interview_sessions
		SET responses = responses || $2::jsonb
		WHERE id = $1 AND status = 'in-progress'
		RETURNING ` + sessionColumns

	return scanSession(r.pool.QueryRow(ctx, query, sessionID, string(payload)))
}

func (r *PgInterviewRepository) Finish(ctx context.Context, sessionID string, endedAt time.Time, final SessionFinal) (domain.InterviewSession, error) {
	// Las columnas de arreglos son NOT NULL; un slice nil se insertaría como NULL.
	if final.KeyStrengths == nil {
		final.KeyStrengths = []string{}
	}
	if final.DevelopmentAreas == nil {
		final.DevelopmentAreas = []string{}
	}
	if final.RecommendedResources == nil {
		final.RecommendedResources = []string{}
	}

	query := `
		UPDATE interview_sessions
		SET status = 'completed',
		    ended_at = $2,
		    overall_score = $3,
		    overall_feedback = $4,
		    key_strengths = $5,
		    development_areas = $6,
		    recommended_resources = $7,
		    next_steps = $8
		WHERE id = $1 AND status = 'in-progress'
		RETURNING ` + sessionColumns

	return scanSession(r.pool.QueryRow(ctx, query,
		sessionID,
		endedAt,
		final.OverallScore,
		final.OverallFeedback,
		final.KeyStrengths,
		final.DevelopmentAreas,
		final.RecommendedResources,
		final.NextSteps,
	))
}

func (r *PgInterviewRepository) Abandon(ctx context.Context, sessionID string, endedAt time.Time) (domain.InterviewSession, error) {
	query := `
		UPDATE interview_sessions
		SET status = 'abandoned', ended_at = $2
		WHERE id = $1 AND status = 'in-progress'
		RETURNING ` + sessionColumns

	return scanSession(r.pool.QueryRow(ctx, query, sessionID, endedAt))
}

// ListByUser devuelve resúmenes sin el cuerpo de las respuestas.
func (r *PgInterviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	const query = `
		SELECT id, user_id, role, interview_type, seniority, status, started_at, ended_at,
		       jsonb_array_length(responses)
		FROM interview_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionSummary
	for rows.Next() {
		var s domain.SessionSummary
		err = rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Role,
			&s.InterviewType,
			&s.Seniority,
			&s.Status,
			&s.StartedAt,
			&s.EndedAt,
			&s.ResponseCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanSession(row pgx.Row) (domain.InterviewSession, error) {
	var s domain.InterviewSession
	var responses []byte
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Role,
		&s.InterviewType,
		&s.Seniority,
		&s.Status,
		&s.StartedAt,
		&s.EndedAt,
		&responses,
		&s.OverallScore,
		&s.OverallFeedback,
		&s.KeyStrengths,
		&s.DevelopmentAreas,
		&s.RecommendedResources,
		&s.NextSteps,
	)
	if err != nil {
		return domain.InterviewSession{}, err
	}
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &s.Responses); err != nil {
			return domain.InterviewSession{}, err
		}
	}
	return s, nil
}
