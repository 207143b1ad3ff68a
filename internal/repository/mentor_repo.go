package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"asha-platform/internal/domain"
)

// ErrDuplicateBooking indica que el slot del mentor ya está reservado.
var ErrDuplicateBooking = errors.New("booking slot already taken")

// MentorRepository expone el directorio de mentores producido por la ingesta
// externa, más las reservas de slots.
type MentorRepository interface {
	List(ctx context.Context) ([]domain.Mentor, error)
	GetByID(ctx context.Context, id string) (domain.Mentor, error)
	Create(ctx context.Context, mentor domain.Mentor) error
	CreateBooking(ctx context.Context, booking domain.Booking) error
}

// PgMentorRepository implementa MentorRepository usando pgxpool.
type PgMentorRepository struct {
	pool *pgxpool.Pool
}

func NewPgMentorRepository(pool *pgxpool.Pool) *PgMentorRepository {
	return &PgMentorRepository{pool: pool}
}

const mentorColumns = "id, name, headline, company, expertise, years_of_experience, hourly_rate, availability, created_at"

func (r *PgMentorRepository) List(ctx context.Context) ([]domain.Mentor, error) {
	query := "SELECT " + mentorColumns + " FROM mentors ORDER BY name"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PgMentorRepository) GetByID(ctx context.Context, id string) (domain.Mentor, error) {
	query := "SELECT " + mentorColumns + " FROM mentors WHERE id = $1"

	m, err := scanMentor(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Mentor{}, err
	}
	return m, err
}

// Create inserta un mentor; solo lo usa el job de ingesta.
func (r *PgMentorRepository) Create(ctx context.Context, mentor domain.Mentor) error {
	if mentor.Expertise == nil {
		mentor.Expertise = []string{}
	}
	if mentor.Availability == nil {
		mentor.Availability = []string{}
	}

	const query = `
		INSERT INTO mentors (id, name, headline, company, expertise, years_of_experience, hourly_rate, availability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		mentor.ID,
		mentor.Name,
		mentor.Headline,
		mentor.Company,
		mentor.Expertise,
		mentor.YearsOfExp,
		mentor.HourlyRate,
		mentor.Availability,
		mentor.CreatedAt,
	)
	return err
}

// CreateBooking inserta la reserva; el índice único (mentor_id, slot) resuelve
// la carrera entre dos reservas concurrentes del mismo slot.
func (r *PgMentorRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const query = `
		INSERT INTO bookings (id, user_id, mentor_id, slot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.MentorID,
		booking.Slot,
		booking.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateBooking
	}
	return err
}

func scanMentor(row pgx.Row) (domain.Mentor, error) {
	var m domain.Mentor
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Headline,
		&m.Company,
		&m.Expertise,
		&m.YearsOfExp,
		&m.HourlyRate,
		&m.Availability,
		&m.CreatedAt,
	)
	return m, err
}
