package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asha-platform/internal/domain"
)

// SavedQuestionRepository define el contrato de persistencia del ledger de
// preguntas guardadas.
type SavedQuestionRepository interface {
	Upsert(ctx context.Context, saved domain.SavedQuestion) (domain.SavedQuestion, error)
	GetByID(ctx context.Context, id string) (domain.SavedQuestion, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.SavedQuestion, error)
}

// PgSavedQuestionRepository implementa SavedQuestionRepository usando pgxpool.
type PgSavedQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSavedQuestionRepository(pool *pgxpool.Pool) *PgSavedQuestionRepository {
	return &PgSavedQuestionRepository{pool: pool}
}

// Upsert inserta o reemplaza el registro del par (user_id, question_id) en una
// sola sentencia; el índice único es el primitivo de serialización.
func (r *PgSavedQuestionRepository) Upsert(ctx context.Context, saved domain.SavedQuestion) (domain.SavedQuestion, error) {
	// tags es NOT NULL; un slice nil se insertaría como NULL.
	if saved.Tags == nil {
		saved.Tags = []string{}
	}

	const query = `
		INSERT INTO saved_questions (id, user_id, question_id, notes, tags, lists, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, question_id) DO UPDATE
		SET notes = EXCLUDED.notes,
		    tags = EXCLUDED.tags,
		    lists = EXCLUDED.lists,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, question_id, notes, tags, lists, created_at, updated_at
	`
	var out domain.SavedQuestion
	err := r.pool.QueryRow(ctx, query,
		saved.ID,
		saved.UserID,
		saved.QuestionID,
		saved.Notes,
		saved.Tags,
		saved.Lists,
		saved.UpdatedAt,
	).Scan(
		&out.ID,
		&out.UserID,
		&out.QuestionID,
		&out.Notes,
		&out.Tags,
		&out.Lists,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	return out, err
}

func (r *PgSavedQuestionRepository) GetByID(ctx context.Context, id string) (domain.SavedQuestion, error) {
	const query = `
		SELECT id, user_id, question_id, notes, tags, lists, created_at, updated_at
		FROM saved_questions
		WHERE id = $1
	`
	var s domain.SavedQuestion
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.QuestionID,
		&s.Notes,
		&s.Tags,
		&s.Lists,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SavedQuestion{}, err
	}
	return s, err
}

func (r *PgSavedQuestionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM saved_questions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListByUser devuelve los guardados del usuario con su pregunta poblada.
func (r *PgSavedQuestionRepository) ListByUser(ctx context.Context, userID string) ([]domain.SavedQuestion, error) {
	const query = `
		SELECT s.id, s.user_id, s.question_id, s.notes, s.tags, s.lists, s.created_at, s.updated_at,
		       q.id, q.question, q.expected_answer, q.type, q.category, q.difficulty, q.company, q.topics, q.created_at
		FROM saved_questions s
		JOIN questions q ON q.id = s.question_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SavedQuestion
	for rows.Next() {
		var s domain.SavedQuestion
		var q domain.Question
		err = rows.Scan(
			&s.ID,
			&s.UserID,
			&s.QuestionID,
			&s.Notes,
			&s.Tags,
			&s.Lists,
			&s.CreatedAt,
			&s.UpdatedAt,
			&q.ID,
			&q.Question,
			&q.ExpectedAnswer,
			&q.Type,
			&q.Category,
			&q.Difficulty,
			&q.Company,
			&q.Topics,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.Question = &q
		out = append(out, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
