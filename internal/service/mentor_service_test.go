package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
)

type mockMentorRepo struct {
	mentors  map[string]domain.Mentor
	bookings map[string]bool
}

func newMockMentorRepo() *mockMentorRepo {
	return &mockMentorRepo{
		mentors:  make(map[string]domain.Mentor),
		bookings: make(map[string]bool),
	}
}

func (m *mockMentorRepo) List(_ context.Context) ([]domain.Mentor, error) {
	var out []domain.Mentor
	for _, mentor := range m.mentors {
		out = append(out, mentor)
	}
	return out, nil
}

func (m *mockMentorRepo) GetByID(_ context.Context, id string) (domain.Mentor, error) {
	mentor, ok := m.mentors[id]
	if !ok {
		return domain.Mentor{}, pgx.ErrNoRows
	}
	return mentor, nil
}

func (m *mockMentorRepo) Create(_ context.Context, mentor domain.Mentor) error {
	m.mentors[mentor.ID] = mentor
	return nil
}

func (m *mockMentorRepo) CreateBooking(_ context.Context, booking domain.Booking) error {
	key := booking.MentorID + "|" + booking.Slot
	if m.bookings[key] {
		return repository.ErrDuplicateBooking
	}
	m.bookings[key] = true
	return nil
}

func TestMentorServiceBook(t *testing.T) {
	repo := newMockMentorRepo()
	repo.mentors["m1"] = domain.Mentor{
		ID:           "m1",
		Name:         "Asha",
		Availability: []string{"2026-09-05T10:00", "2026-09-05T11:00"},
	}
	svc := NewMentorService(repo)
	ctx := context.Background()

	booking, err := svc.Book(ctx, "u1", "m1", "2026-09-05T10:00")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.MentorID != "m1" || booking.UserID != "u1" {
		t.Fatalf("unexpected booking: %+v", booking)
	}

	if _, err := svc.Book(ctx, "u2", "m1", "2026-09-05T10:00"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := svc.Book(ctx, "u1", "m1", "2026-09-06T10:00"); !errors.Is(err, ErrSlotInvalid) {
		t.Fatalf("expected ErrSlotInvalid, got %v", err)
	}
	if _, err := svc.Book(ctx, "u1", "missing", "2026-09-05T10:00"); !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected ErrMentorNotFound, got %v", err)
	}
}
