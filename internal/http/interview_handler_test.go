package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/repository"
	"asha-platform/internal/service"
)

// stubInterviewRepo guarda sesiones en memoria y replica la semántica de los
// updates condicionales del repositorio real: miss sobre id o status devuelve
// pgx.ErrNoRows.
type stubInterviewRepo struct {
	sessions map[string]domain.InterviewSession
}

func newStubInterviewRepo() *stubInterviewRepo {
	return &stubInterviewRepo{sessions: map[string]domain.InterviewSession{}}
}

func (r *stubInterviewRepo) Create(_ context.Context, session domain.InterviewSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *stubInterviewRepo) GetByID(_ context.Context, id string) (domain.InterviewSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return domain.InterviewSession{}, pgx.ErrNoRows
	}
	return session, nil
}

func (r *stubInterviewRepo) AppendResponse(_ context.Context, sessionID string, response domain.Response) (domain.InterviewSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok || session.Status != domain.SessionStatusInProgress {
		return domain.InterviewSession{}, pgx.ErrNoRows
	}
	session.Responses = append(session.Responses, response)
	r.sessions[sessionID] = session
	return session, nil
}

func (r *stubInterviewRepo) Finish(_ context.Context, sessionID string, endedAt time.Time, final repository.SessionFinal) (domain.InterviewSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok || session.Status != domain.SessionStatusInProgress {
		return domain.InterviewSession{}, pgx.ErrNoRows
	}
	session.Status = domain.SessionStatusCompleted
	session.EndedAt = &endedAt
	session.OverallScore = final.OverallScore
	session.OverallFeedback = final.OverallFeedback
	session.KeyStrengths = final.KeyStrengths
	session.DevelopmentAreas = final.DevelopmentAreas
	session.RecommendedResources = final.RecommendedResources
	session.NextSteps = final.NextSteps
	r.sessions[sessionID] = session
	return session, nil
}

func (r *stubInterviewRepo) Abandon(_ context.Context, sessionID string, endedAt time.Time) (domain.InterviewSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok || session.Status != domain.SessionStatusInProgress {
		return domain.InterviewSession{}, pgx.ErrNoRows
	}
	session.Status = domain.SessionStatusAbandoned
	session.EndedAt = &endedAt
	r.sessions[sessionID] = session
	return session, nil
}

func (r *stubInterviewRepo) ListByUser(_ context.Context, userID string) ([]domain.SessionSummary, error) {
	var out []domain.SessionSummary
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		out = append(out, domain.SessionSummary{
			ID:            s.ID,
			UserID:        s.UserID,
			Role:          s.Role,
			InterviewType: s.InterviewType,
			Seniority:     s.Seniority,
			Status:        s.Status,
			StartedAt:     s.StartedAt,
			EndedAt:       s.EndedAt,
			ResponseCount: len(s.Responses),
		})
	}
	return out, nil
}

func newInterviewTestRouter(t *testing.T) (*gin.Engine, *service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	interviewServ := service.NewInterviewService(logger, newStubInterviewRepo())
	handler := NewInterviewHandler(logger, interviewServ)

	r := gin.New()
	auth := r.Group("/", JWTAuthMiddleware(jwtSvc))
	auth.POST("/interviews", handler.Start)
	auth.GET("/interviews/:id", handler.Get)
	auth.GET("/interviews/:id/report", handler.Report)
	auth.POST("/interviews/:id/responses", handler.AppendResponse)
	auth.POST("/interviews/:id/finish", handler.Finish)
	return r, jwtSvc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestInterviewHandlerLifecycle(t *testing.T) {
	r, jwtSvc := newInterviewTestRouter(t)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/interviews", token, gin.H{
		"role":           "Backend Engineer",
		"interview_type": "technical",
		"seniority":      "mid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var started struct {
		Session domain.InterviewSession `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode start response: %v", err)
	}
	if started.Session.Status != domain.SessionStatusInProgress {
		t.Fatalf("expected in-progress, got %q", started.Session.Status)
	}
	sessionID := started.Session.ID

	for _, tech := range []int{80, 84} {
		rec = doJSON(t, r, http.MethodPost, fmt.Sprintf("/interviews/%s/responses", sessionID), token, gin.H{
			"question": "q",
			"response": "a",
			"scores":   gin.H{"technical": tech, "communication": 70},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("append: expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/interviews/%s/report", sessionID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reported struct {
		Report service.SessionReport `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &reported); err != nil {
		t.Fatalf("decode report response: %v", err)
	}
	if reported.Report.Technical != 82 {
		t.Fatalf("expected technical average 82, got %d", reported.Report.Technical)
	}
	if reported.Report.TechnicalClass != service.ScoreClassHigh {
		t.Fatalf("expected high class, got %q", reported.Report.TechnicalClass)
	}

	rec = doJSON(t, r, http.MethodPost, fmt.Sprintf("/interviews/%s/finish", sessionID), token, gin.H{
		"overall_feedback": "solid",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodPost, fmt.Sprintf("/interviews/%s/responses", sessionID), token, gin.H{
		"question": "late",
		"response": "late",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("append after finish: expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestInterviewHandlerOwnership(t *testing.T) {
	r, jwtSvc := newInterviewTestRouter(t)
	ownerToken, err := jwtSvc.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	otherToken, err := jwtSvc.GenerateAccessToken("other")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/interviews", ownerToken, gin.H{
		"role":           "Data Engineer",
		"interview_type": "behavioral",
		"seniority":      "senior",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d", rec.Code)
	}
	var started struct {
		Session domain.InterviewSession `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode start response: %v", err)
	}

	rec = doJSON(t, r, http.MethodGet, "/interviews/"+started.Session.ID, otherToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign get: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/interviews/"+started.Session.ID+"/responses", otherToken, gin.H{
		"question": "q",
		"response": "a",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign append: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/interviews/00000000-0000-0000-0000-000000000000", ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing session: expected 404, got %d", rec.Code)
	}
}

func TestInterviewHandlerRejectsBadStart(t *testing.T) {
	r, jwtSvc := newInterviewTestRouter(t)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/interviews", token, gin.H{
		"role":           "Backend Engineer",
		"interview_type": "astrological",
		"seniority":      "mid",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}
