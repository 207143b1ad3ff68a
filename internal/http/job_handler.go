package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/domain"
	"asha-platform/internal/service"
)

// JobHandler mantiene dependencias para el tablón de empleos.
type JobHandler struct {
	logger  *zap.Logger
	jobServ *service.JobService
}

func NewJobHandler(logger *zap.Logger, jobServ *service.JobService) *JobHandler {
	return &JobHandler{
		logger:  logger,
		jobServ: jobServ,
	}
}

// Query maneja GET /jobs.
func (h *JobHandler) Query(c *gin.Context) {
	filter := domain.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Company:  c.Query("company"),
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 0)

	result, err := h.jobServ.Query(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Error("job query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not query jobs"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID maneja GET /jobs/:id.
func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.jobServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.logger.Error("get job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}
