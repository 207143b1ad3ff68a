package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/service"
)

// QuestionHandler mantiene dependencias para endpoints del catálogo.
type QuestionHandler struct {
	logger       *zap.Logger
	questionServ *service.QuestionService
}

func NewQuestionHandler(logger *zap.Logger, questionServ *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		logger:       logger,
		questionServ: questionServ,
	}
}

// Query maneja GET /questions.
func (h *QuestionHandler) Query(c *gin.Context) {
	filter := domain.QuestionFilter{
		Search:     c.Query("search"),
		Type:       c.Query("type"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Company:    c.Query("company"),
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 0)

	result, err := h.questionServ.Query(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Error("question query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not query questions"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID maneja GET /questions/:id.
func (h *QuestionHandler) GetByID(c *gin.Context) {
	question, err := h.questionServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		h.logger.Error("get question failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
