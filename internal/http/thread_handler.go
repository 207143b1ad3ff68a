package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/service"
)

// ThreadHandler mantiene dependencias para los hilos de discusión.
type ThreadHandler struct {
	logger     *zap.Logger
	threadServ *service.ThreadService
}

func NewThreadHandler(logger *zap.Logger, threadServ *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{
		logger:     logger,
		threadServ: threadServ,
	}
}

// Create maneja POST /threads.
func (h *ThreadHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title string   `json:"title" binding:"required"`
		Body  string   `json:"body" binding:"required"`
		Tags  []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create thread request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	thread, err := h.threadServ.Create(c.Request.Context(), userID, req.Title, req.Body, req.Tags)
	if err != nil {
		if errors.Is(err, service.ErrThreadInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread"})
			return
		}
		h.logger.Error("create thread failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create thread"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"thread": thread})
}

// Get maneja GET /threads/:id.
func (h *ThreadHandler) Get(c *gin.Context) {
	thread, err := h.threadServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
			return
		}
		h.logger.Error("get thread failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get thread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": thread})
}

// List maneja GET /threads.
func (h *ThreadHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 0)

	threads, total, err := h.threadServ.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("list threads failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list threads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads":     threads,
		"total_count": total,
	})
}

// Comment maneja POST /threads/:id/comments.
func (h *ThreadHandler) Comment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid comment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment, err := h.threadServ.Comment(c.Request.Context(), userID, c.Param("id"), req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
		case errors.Is(err, service.ErrCommentInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment"})
		default:
			h.logger.Error("create comment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
