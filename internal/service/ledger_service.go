package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrSavedNotFound    = errors.New("saved question not found")
	ErrSavedNotOwned    = errors.New("saved question not owned by user")
)

// LedgerService administra los marcadores de preguntas por usuario. El índice
// único (user_id, question_id) garantiza a lo sumo un registro por par.
type LedgerService struct {
	saved     repository.SavedQuestionRepository
	questions repository.QuestionRepository
}

func NewLedgerService(saved repository.SavedQuestionRepository, questions repository.QuestionRepository) *LedgerService {
	return &LedgerService{
		saved:     saved,
		questions: questions,
	}
}

// SaveInput son los campos editables de un marcador; en el upsert se
// reemplazan completos, no se mezclan con los previos.
type SaveInput struct {
	Notes string
	Tags  []string
	Lists []string
}

// Save crea o actualiza el marcador del par (userID, questionID).
func (s *LedgerService) Save(ctx context.Context, userID, questionID string, input SaveInput) (domain.SavedQuestion, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedQuestion{}, ErrQuestionNotFound
		}
		return domain.SavedQuestion{}, err
	}

	lists := input.Lists
	if len(lists) == 0 {
		lists = []string{domain.DefaultSavedList}
	}

	saved := domain.SavedQuestion{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		Notes:      input.Notes,
		Tags:       input.Tags,
		Lists:      lists,
		UpdatedAt:  time.Now().UTC(),
	}

	return s.saved.Upsert(ctx, saved)
}

// Remove borra un marcador propio. Un segundo remove sobre el mismo id falla
// con ErrSavedNotFound; el caller debe enterarse, no recibir un éxito mudo.
func (s *LedgerService) Remove(ctx context.Context, userID, savedQuestionID string) error {
	saved, err := s.saved.GetByID(ctx, savedQuestionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSavedNotFound
		}
		return err
	}
	if saved.UserID != userID {
		return ErrSavedNotOwned
	}

	if err := s.saved.Delete(ctx, savedQuestionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSavedNotFound
		}
		return err
	}
	return nil
}

// ListForUser devuelve los marcadores del usuario con su pregunta poblada.
func (s *LedgerService) ListForUser(ctx context.Context, userID string) ([]domain.SavedQuestion, error) {
	return s.saved.ListByUser(ctx, userID)
}

// IsSaved indica si el usuario ya guardó la pregunta.
func (s *LedgerService) IsSaved(ctx context.Context, userID, questionID string) (bool, error) {
	saved, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, item := range saved {
		if item.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}
