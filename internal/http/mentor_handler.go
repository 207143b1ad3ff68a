package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/service"
)

// MentorHandler mantiene dependencias para el directorio de mentores.
type MentorHandler struct {
	logger     *zap.Logger
	mentorServ *service.MentorService
}

func NewMentorHandler(logger *zap.Logger, mentorServ *service.MentorService) *MentorHandler {
	return &MentorHandler{
		logger:     logger,
		mentorServ: mentorServ,
	}
}

// List maneja GET /mentors.
func (h *MentorHandler) List(c *gin.Context) {
	mentors, err := h.mentorServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list mentors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list mentors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// GetByID maneja GET /mentors/:id.
func (h *MentorHandler) GetByID(c *gin.Context) {
	mentor, err := h.mentorServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMentorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		h.logger.Error("get mentor failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get mentor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentor": mentor})
}

// Book maneja POST /mentors/:id/bookings.
func (h *MentorHandler) Book(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	booking, err := h.mentorServ.Book(c.Request.Context(), userID, c.Param("id"), req.Slot)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMentorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
		case errors.Is(err, service.ErrSlotInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot not offered"})
		case errors.Is(err, service.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
		default:
			h.logger.Error("book mentor failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book mentor"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}
