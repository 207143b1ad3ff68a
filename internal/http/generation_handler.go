package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/service"
)

// GenerationHandler mantiene dependencias para la generación de preguntas.
type GenerationHandler struct {
	logger         *zap.Logger
	generationServ *service.GenerationService
}

func NewGenerationHandler(logger *zap.Logger, generationServ *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		logger:         logger,
		generationServ: generationServ,
	}
}

// Generate maneja POST /ai/questions. Las fallas del colaborador LLM se
// responden 502 para que el cliente pueda reintentar sin asumir datos
// corruptos propios.
func (h *GenerationHandler) Generate(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req struct {
		Role               string   `json:"role" binding:"required"`
		InterviewType      string   `json:"interview_type" binding:"required"`
		Seniority          string   `json:"seniority" binding:"required"`
		Technologies       []string `json:"technologies"`
		CompanyValues      []string `json:"company_values"`
		CustomRequirements string   `json:"custom_requirements"`
		Count              int      `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate questions request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	questions, err := h.generationServ.GenerateQuestions(c.Request.Context(), service.GenerateInput{
		Role:               req.Role,
		InterviewType:      req.InterviewType,
		Seniority:          req.Seniority,
		Technologies:       req.Technologies,
		CompanyValues:      req.CompanyValues,
		CustomRequirements: req.CustomRequirements,
		Count:              req.Count,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGenerationInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation input"})
		case errors.Is(err, service.ErrGenerationUpstream),
			errors.Is(err, service.ErrGenerationMalformed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "question generation unavailable"})
		default:
			h.logger.Error("generate questions failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate questions"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}
