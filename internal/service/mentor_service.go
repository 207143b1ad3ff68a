package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

var (
	ErrMentorNotFound = errors.New("mentor not found")
	ErrSlotInvalid    = errors.New("slot not offered by mentor")
	ErrSlotTaken      = errors.New("slot already booked")
)

// MentorService expone el directorio de mentores y las reservas de slots.
type MentorService struct {
	mentors repository.MentorRepository
}

func NewMentorService(mentors repository.MentorRepository) *MentorService {
	return &MentorService{mentors: mentors}
}

func (s *MentorService) List(ctx context.Context) ([]domain.Mentor, error) {
	return s.mentors.List(ctx)
}

func (s *MentorService) GetByID(ctx context.Context, id string) (domain.Mentor, error) {
	mentor, err := s.mentors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Mentor{}, ErrMentorNotFound
		}
		return domain.Mentor{}, err
	}
	return mentor, nil
}

// Book reserva un slot ofertado por el mentor. El índice único del repositorio
// decide la carrera entre dos reservas concurrentes del mismo slot.
func (s *MentorService) Book(ctx context.Context, userID, mentorID, slot string) (domain.Booking, error) {
	slot = strings.TrimSpace(slot)

	mentor, err := s.GetByID(ctx, mentorID)
	if err != nil {
		return domain.Booking{}, err
	}

	offered := false
	for _, available := range mentor.Availability {
		if available == slot {
			offered = true
			break
		}
	}
	if !offered {
		return domain.Booking{}, ErrSlotInvalid
	}

	booking := domain.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		MentorID:  mentorID,
		Slot:      slot,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.mentors.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return domain.Booking{}, ErrSlotTaken
		}
		return domain.Booking{}, err
	}

	return booking, nil
}
