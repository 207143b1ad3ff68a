package service

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// QuestionService expone el catálogo de preguntas con consulta filtrada y
// paginada. El catálogo es de solo lectura para usuarios finales; las altas
// llegan por el job de ingesta.
type QuestionService struct {
	logger    *zap.Logger
	questions repository.QuestionRepository
	cache     QuestionCache
}

func NewQuestionService(logger *zap.Logger, questions repository.QuestionRepository, cache QuestionCache) *QuestionService {
	return &QuestionService{
		logger:    logger,
		questions: questions,
		cache:     cache,
	}
}

// Query pagina 1-indexado; una página fuera de rango devuelve items vacíos
// con total y page_count correctos.
func (s *QuestionService) Query(ctx context.Context, filter domain.QuestionFilter, page, pageSize int) (domain.QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, filter, page, pageSize); ok {
			return cached, nil
		}
	}

	items, total, err := s.questions.Query(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.QuestionPage{}, err
	}
	if items == nil {
		items = []domain.Question{}
	}

	result := domain.QuestionPage{
		Items:      items,
		TotalCount: total,
		PageCount:  pageCount(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}

	if s.cache != nil {
		s.cache.Set(ctx, filter, page, pageSize, result)
	}

	return result, nil
}

func (s *QuestionService) GetByID(ctx context.Context, id string) (domain.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, ErrQuestionNotFound
		}
		return domain.Question{}, err
	}
	return question, nil
}

func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
