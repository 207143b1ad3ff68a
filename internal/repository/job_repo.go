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

// JobRepository define el contrato de persistencia del tablón de empleos.
type JobRepository interface {
	Query(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int, error)
	GetByID(ctx context.Context, id string) (domain.Job, error)
	Create(ctx context.Context, job domain.Job) error
}

// PgJobRepository implementa JobRepository usando pgxpool.
type PgJobRepository struct {
	pool *pgxpool.Pool
}

func NewPgJobRepository(pool *pgxpool.Pool) *PgJobRepository {
	return &PgJobRepository{pool: pool}
}

const jobColumns = "id, title, company, location, type, description, apply_url, posted_at"

func jobWhere(filter domain.JobFilter) (string, []interface{}) {
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
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	add("location", filter.Location)
	add("type", filter.Type)
	add("company", filter.Company)

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PgJobRepository) Query(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int, error) {
	where, args := jobWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM jobs%s ORDER BY posted_at DESC, id LIMIT $%d OFFSET $%d",
		jobColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *PgJobRepository) GetByID(ctx context.Context, id string) (domain.Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE id = $1"

	j, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Job{}, err
	}
	return j, err
}

func (r *PgJobRepository) Create(ctx context.Context, job domain.Job) error {
	const query = `
		INSERT INTO jobs (id, title, company, location, type, description, apply_url, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Description,
		job.ApplyURL,
		job.PostedAt,
	)
	return err
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Type,
		&j.Description,
		&j.ApplyURL,
		&j.PostedAt,
	)
	return j, err
}
