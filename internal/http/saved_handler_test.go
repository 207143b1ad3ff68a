package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/service"
)

type stubQuestionRepo struct {
	questions map[string]domain.Question
}

func (r *stubQuestionRepo) Query(_ context.Context, _ domain.QuestionFilter, _, _ int) ([]domain.Question, int, error) {
	var out []domain.Question
	for _, q := range r.questions {
		out = append(out, q)
	}
	return out, len(out), nil
}

func (r *stubQuestionRepo) GetByID(_ context.Context, id string) (domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return domain.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (r *stubQuestionRepo) Create(_ context.Context, q domain.Question) error {
	r.questions[q.ID] = q
	return nil
}

// stubSavedRepo indexa por (user_id, question_id) igual que el índice único de
// la tabla real.
type stubSavedRepo struct {
	byPair map[string]domain.SavedQuestion
}

func newStubSavedRepo() *stubSavedRepo {
	return &stubSavedRepo{byPair: map[string]domain.SavedQuestion{}}
}

func (r *stubSavedRepo) Upsert(_ context.Context, saved domain.SavedQuestion) (domain.SavedQuestion, error) {
	key := saved.UserID + "/" + saved.QuestionID
	if existing, ok := r.byPair[key]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	}
	r.byPair[key] = saved
	return saved, nil
}

func (r *stubSavedRepo) GetByID(_ context.Context, id string) (domain.SavedQuestion, error) {
	for _, saved := range r.byPair {
		if saved.ID == id {
			return saved, nil
		}
	}
	return domain.SavedQuestion{}, pgx.ErrNoRows
}

func (r *stubSavedRepo) Delete(_ context.Context, id string) error {
	for key, saved := range r.byPair {
		if saved.ID == id {
			delete(r.byPair, key)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubSavedRepo) ListByUser(_ context.Context, userID string) ([]domain.SavedQuestion, error) {
	var out []domain.SavedQuestion
	for _, saved := range r.byPair {
		if saved.UserID == userID {
			out = append(out, saved)
		}
	}
	return out, nil
}

func newSavedTestRouter(t *testing.T) (*gin.Engine, *service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)

	questions := &stubQuestionRepo{questions: map[string]domain.Question{
		"q1": {ID: "q1", Question: "Explain indexes", Type: domain.QuestionTypeTechnical},
	}}
	ledgerServ := service.NewLedgerService(newStubSavedRepo(), questions)
	handler := NewSavedQuestionHandler(logger, ledgerServ)

	r := gin.New()
	auth := r.Group("/", JWTAuthMiddleware(jwtSvc))
	auth.POST("/saved-questions", handler.Save)
	auth.GET("/saved-questions", handler.List)
	auth.DELETE("/saved-questions/:id", handler.Remove)
	auth.GET("/saved-questions/status/:questionId", handler.Status)
	return r, jwtSvc
}

func TestSavedQuestionHandlerSaveAndStatus(t *testing.T) {
	r, jwtSvc := newSavedTestRouter(t)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/saved-questions", token, gin.H{
		"question_id": "q1",
		"notes":       "repasar",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var saveResp struct {
		SavedQuestion domain.SavedQuestion `json:"saved_question"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if len(saveResp.SavedQuestion.Lists) != 1 || saveResp.SavedQuestion.Lists[0] != domain.DefaultSavedList {
		t.Fatalf("expected default list, got %v", saveResp.SavedQuestion.Lists)
	}

	// Guardar de nuevo el mismo par no crea un segundo registro.
	rec = doJSON(t, r, http.MethodPost, "/saved-questions", token, gin.H{
		"question_id": "q1",
		"notes":       "actualizado",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("second save: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/saved-questions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var listResp struct {
		SavedQuestions []domain.SavedQuestion `json:"saved_questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listResp.SavedQuestions) != 1 {
		t.Fatalf("expected 1 saved question, got %d", len(listResp.SavedQuestions))
	}
	if listResp.SavedQuestions[0].Notes != "actualizado" {
		t.Fatalf("expected updated notes, got %q", listResp.SavedQuestions[0].Notes)
	}

	rec = doJSON(t, r, http.MethodGet, "/saved-questions/status/q1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	var statusResp struct {
		Saved bool `json:"saved"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statusResp); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	if !statusResp.Saved {
		t.Fatal("expected saved=true")
	}
}

func TestSavedQuestionHandlerRemove(t *testing.T) {
	r, jwtSvc := newSavedTestRouter(t)
	ownerToken, err := jwtSvc.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	otherToken, err := jwtSvc.GenerateAccessToken("other")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/saved-questions", ownerToken, gin.H{"question_id": "q1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", rec.Code)
	}
	var saveResp struct {
		SavedQuestion domain.SavedQuestion `json:"saved_question"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	savedID := saveResp.SavedQuestion.ID

	rec = doJSON(t, r, http.MethodDelete, "/saved-questions/"+savedID, otherToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign remove: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodDelete, "/saved-questions/"+savedID, ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodDelete, "/saved-questions/"+savedID, ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second remove: expected 404, got %d", rec.Code)
	}
}

func TestSavedQuestionHandlerUnknownQuestion(t *testing.T) {
	r, jwtSvc := newSavedTestRouter(t)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/saved-questions", token, gin.H{"question_id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}
