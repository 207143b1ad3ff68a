package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

var ErrJobNotFound = errors.New("job not found")

// JobService expone el tablón de empleos con el mismo contrato de filtros y
// paginación que el catálogo de preguntas.
type JobService struct {
	jobs repository.JobRepository
}

func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) Query(ctx context.Context, filter domain.JobFilter, page, pageSize int) (domain.JobPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.jobs.Query(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.JobPage{}, err
	}
	if items == nil {
		items = []domain.Job{}
	}

	return domain.JobPage{
		Items:      items,
		TotalCount: total,
		PageCount:  pageCount(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, ErrJobNotFound
		}
		return domain.Job{}, err
	}
	return job, nil
}
