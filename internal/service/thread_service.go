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
	ErrThreadNotFound = errors.New("thread not found")
	ErrThreadInvalid  = errors.New("invalid thread")
	ErrCommentInvalid = errors.New("invalid comment")
)

// ThreadService administra los hilos de discusión y sus comentarios.
type ThreadService struct {
	threads repository.ThreadRepository
}

func NewThreadService(threads repository.ThreadRepository) *ThreadService {
	return &ThreadService{threads: threads}
}

func (s *ThreadService) Create(ctx context.Context, userID, title, body string, tags []string) (domain.Thread, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return domain.Thread{}, ErrThreadInvalid
	}

	thread := domain.Thread{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.threads.Create(ctx, thread); err != nil {
		return domain.Thread{}, err
	}

	return thread, nil
}

// Get devuelve el hilo con sus comentarios en orden de creación.
func (s *ThreadService) Get(ctx context.Context, threadID string) (domain.Thread, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Thread{}, ErrThreadNotFound
		}
		return domain.Thread{}, err
	}

	comments, err := s.threads.ListComments(ctx, threadID)
	if err != nil {
		return domain.Thread{}, err
	}
	thread.Comments = comments
	thread.CommentCount = len(comments)

	return thread, nil
}

func (s *ThreadService) List(ctx context.Context, page, pageSize int) ([]domain.Thread, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return s.threads.List(ctx, pageSize, (page-1)*pageSize)
}

func (s *ThreadService) Comment(ctx context.Context, userID, threadID, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, ErrCommentInvalid
	}

	if _, err := s.threads.GetByID(ctx, threadID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, ErrThreadNotFound
		}
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.threads.CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}

	return comment, nil
}
