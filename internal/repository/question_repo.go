package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asha-platform/internal/domain"
)

// QuestionRepository define el contrato de persistencia para el catálogo.
type QuestionRepository interface {
	Query(ctx context.Context, filter domain.QuestionFilter, limit, offset int) ([]domain.Question, int, error)
	GetByID(ctx context.Context, id string) (domain.Question, error)
	Create(ctx context.Context, question domain.Question) error
}

// PgQuestionRepository implementa QuestionRepository usando pgxpool.
type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

const questionColumns = "id, question, expected_answer, type, category, difficulty, company, topics, created_at"

func questionWhere(filter domain.QuestionFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(column, value string) {
		if value == "" || strings.EqualFold(value, "all") {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(question ILIKE $%d OR expected_answer ILIKE $%d)", n, n))
	}
	add("type", filter.Type)
	add("category", filter.Category)
	add("difficulty", filter.Difficulty)
	add("company", filter.Company)

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PgQuestionRepository) Query(ctx context.Context, filter domain.QuestionFilter, limit, offset int) ([]domain.Question, int, error) {
	where, args := questionWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM questions%s ORDER BY created_at, id LIMIT $%d OFFSET $%d",
		questionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *PgQuestionRepository) GetByID(ctx context.Context, id string) (domain.Question, error) {
	query := fmt.Sprintf("SELECT %s FROM questions WHERE id = $1", questionColumns)

	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, err
	}
	return q, err
}

func (r *PgQuestionRepository) Create(ctx context.Context, question domain.Question) error {
	// topics es NOT NULL; un slice nil se insertaría como NULL.
	if question.Topics == nil {
		question.Topics = []string{}
	}

	const query = `
		INSERT INTO questions (id, question, expected_answer, type, category, difficulty, company, topics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		question.ID,
		question.Question,
		question.ExpectedAnswer,
		question.Type,
		question.Category,
		question.Difficulty,
		question.Company,
		question.Topics,
		question.CreatedAt,
	)
	return err
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var q domain.Question
	err := row.Scan(
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
	return q, err
}
