package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asha-platform/internal/domain"
)

// ThreadRepository define el contrato de persistencia de los hilos de
// discusión y sus comentarios.
type ThreadRepository interface {
	Create(ctx context.Context, thread domain.Thread) error
	GetByID(ctx context.Context, id string) (domain.Thread, error)
	List(ctx context.Context, limit, offset int) ([]domain.Thread, int, error)
	CreateComment(ctx context.Context, comment domain.Comment) error
	ListComments(ctx context.Context, threadID string) ([]domain.Comment, error)
}

// PgThreadRepository implementa ThreadRepository usando pgxpool.
type PgThreadRepository struct {
	pool *pgxpool.Pool
}

func NewPgThreadRepository(pool *pgxpool.Pool) *PgThreadRepository {
	return &PgThreadRepository{pool: pool}
}

func (r *PgThreadRepository) Create(ctx context.Context, thread domain.Thread) error {
	// tags es NOT NULL; un slice nil se insertaría como NULL.
	if thread.Tags == nil {
		thread.Tags = []string{}
	}

	const query = `
		INSERT INTO threads (id, user_id, title, body, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		thread.ID,
		thread.UserID,
		thread.Title,
		thread.Body,
		thread.Tags,
		thread.CreatedAt,
	)
	return err
}

func (r *PgThreadRepository) GetByID(ctx context.Context, id string) (domain.Thread, error) {
	const query = `
		SELECT id, user_id, title, body, tags, created_at
		FROM threads
		WHERE id = $1
	`
	var t domain.Thread
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Body,
		&t.Tags,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Thread{}, err
	}
	return t, err
}

// List devuelve hilos de más reciente a más antiguo con su conteo de
// comentarios, sin los cuerpos.
func (r *PgThreadRepository) List(ctx context.Context, limit, offset int) ([]domain.Thread, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM threads").Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
		SELECT t.id, t.user_id, t.title, t.body, t.tags, t.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.thread_id = t.id)
		FROM threads t
		ORDER BY t.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Thread
	for rows.Next() {
		var t domain.Thread
		err = rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Body,
			&t.Tags,
			&t.CreatedAt,
			&t.CommentCount,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *PgThreadRepository) CreateComment(ctx context.Context, comment domain.Comment) error {
	const query = `
		INSERT INTO comments (id, thread_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.ThreadID,
		comment.UserID,
		comment.Body,
		comment.CreatedAt,
	)
	return err
}

func (r *PgThreadRepository) ListComments(ctx context.Context, threadID string) ([]domain.Comment, error) {
	const query = `
		SELECT id, thread_id, user_id, body, created_at
		FROM comments
		WHERE thread_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		err = rows.Scan(
			&c.ID,
			&c.ThreadID,
			&c.UserID,
			&c.Body,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
