package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/service"
)

// SavedQuestionHandler mantiene dependencias para el ledger de guardados.
type SavedQuestionHandler struct {
	logger     *zap.Logger
	ledgerServ *service.LedgerService
}

func NewSavedQuestionHandler(logger *zap.Logger, ledgerServ *service.LedgerService) *SavedQuestionHandler {
	return &SavedQuestionHandler{
		logger:     logger,
		ledgerServ: ledgerServ,
	}
}

// Save maneja POST /saved-questions.
func (h *SavedQuestionHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		QuestionID string   `json:"question_id" binding:"required"`
		Notes      string   `json:"notes"`
		Tags       []string `json:"tags"`
		Lists      []string `json:"lists"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save question request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.ledgerServ.Save(c.Request.Context(), userID, req.QuestionID, service.SaveInput{
		Notes: req.Notes,
		Tags:  req.Tags,
		Lists: req.Lists,
	})
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		h.logger.Error("save question failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_question": saved})
}

// List maneja GET /saved-questions.
func (h *SavedQuestionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.ledgerServ.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list saved questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list saved questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_questions": saved})
}

// Remove maneja DELETE /saved-questions/:id.
func (h *SavedQuestionHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.ledgerServ.Remove(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSavedNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "saved question not found"})
		case errors.Is(err, service.ErrSavedNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your saved question"})
		default:
			h.logger.Error("remove saved question failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove saved question"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// Status maneja GET /saved-questions/status/:questionId.
func (h *SavedQuestionHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.ledgerServ.IsSaved(c.Request.Context(), userID, c.Param("questionId"))
	if err != nil {
		h.logger.Error("saved status failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check saved status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}
