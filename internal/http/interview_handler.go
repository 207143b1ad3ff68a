package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/service"
)

// InterviewHandler mantiene dependencias para endpoints de sesiones.
type InterviewHandler struct {
	logger        *zap.Logger
	interviewServ *service.InterviewService
}

func NewInterviewHandler(logger *zap.Logger, interviewServ *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		logger:        logger,
		interviewServ: interviewServ,
	}
}

// Start maneja POST /interviews.
func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Role          string `json:"role" binding:"required"`
		InterviewType string `json:"interview_type" binding:"required"`
		Seniority     string `json:"seniority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start interview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.interviewServ.Start(c.Request.Context(), userID, req.Role, req.InterviewType, req.Seniority)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("start interview failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start interview"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// AppendResponse maneja POST /interviews/:id/responses.
func (h *InterviewHandler) AppendResponse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.Response
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid append response request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := c.Param("id")
	if !h.ownsSession(c, sessionID, userID) {
		return
	}

	session, err := h.interviewServ.AppendResponse(c.Request.Context(), sessionID, req)
	if err != nil {
		h.writeSessionError(c, err, "append response failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Finish maneja POST /interviews/:id/finish.
func (h *InterviewHandler) Finish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		OverallScore         *int     `json:"overall_score"`
		OverallFeedback      string   `json:"overall_feedback"`
		KeyStrengths         []string `json:"key_strengths"`
		DevelopmentAreas     []string `json:"development_areas"`
		RecommendedResources []string `json:"recommended_resources"`
		NextSteps            string   `json:"next_steps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid finish interview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := c.Param("id")
	if !h.ownsSession(c, sessionID, userID) {
		return
	}

	session, err := h.interviewServ.Finish(c.Request.Context(), sessionID, service.FinishInput{
		OverallScore:         req.OverallScore,
		OverallFeedback:      req.OverallFeedback,
		KeyStrengths:         req.KeyStrengths,
		DevelopmentAreas:     req.DevelopmentAreas,
		RecommendedResources: req.RecommendedResources,
		NextSteps:            req.NextSteps,
	})
	if err != nil {
		h.writeSessionError(c, err, "finish interview failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Abandon maneja POST /interviews/:id/abandon.
func (h *InterviewHandler) Abandon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	if !h.ownsSession(c, sessionID, userID) {
		return
	}

	session, err := h.interviewServ.Abandon(c.Request.Context(), sessionID)
	if err != nil {
		h.writeSessionError(c, err, "abandon interview failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Get maneja GET /interviews/:id.
func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.interviewServ.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeSessionError(c, err, "get interview failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Report maneja GET /interviews/:id/report.
func (h *InterviewHandler) Report(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, report, err := h.interviewServ.Report(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeSessionError(c, err, "interview report failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"report":  report,
	})
}

// List maneja GET /interviews.
func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := h.interviewServ.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list interviews failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list interviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// ownsSession corta con 403/404 si la sesión no existe o no es del usuario.
func (h *InterviewHandler) ownsSession(c *gin.Context, sessionID, userID string) bool {
	_, err := h.interviewServ.Get(c.Request.Context(), sessionID, userID)
	if err != nil {
		h.writeSessionError(c, err, "session ownership check failed")
		return false
	}
	return true
}

func (h *InterviewHandler) writeSessionError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrSessionNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
	case errors.Is(err, service.ErrSessionTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "session already finished"})
	case isValidationErr(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrInvalidInterviewType) ||
		errors.Is(err, service.ErrInvalidSeniority) ||
		errors.Is(err, service.ErrInvalidRole) ||
		errors.Is(err, service.ErrInvalidResponse) ||
		errors.Is(err, service.ErrScoreOutOfRange)
}
