package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asha-platform/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	questionH *QuestionHandler,
	savedH *SavedQuestionHandler,
	interviewH *InterviewHandler,
	generationH *GenerationHandler,
	mentorH *MentorHandler,
	jobH *JobHandler,
	threadH *ThreadHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// Catálogo, mentores, empleos e hilos son de lectura pública.
	r.GET("/questions", questionH.Query)
	r.GET("/questions/:id", questionH.GetByID)

	r.GET("/mentors", mentorH.List)
	r.GET("/mentors/:id", mentorH.GetByID)

	r.GET("/jobs", jobH.Query)
	r.GET("/jobs/:id", jobH.GetByID)

	r.GET("/threads", threadH.List)
	r.GET("/threads/:id", threadH.Get)

	// Todo lo que muta o es por-usuario exige identidad verificada.
	auth := r.Group("/", JWTAuthMiddleware(jwtSvc))

	auth.POST("/saved-questions", savedH.Save)
	auth.GET("/saved-questions", savedH.List)
	auth.DELETE("/saved-questions/:id", savedH.Remove)
	auth.GET("/saved-questions/status/:questionId", savedH.Status)

	auth.POST("/interviews", interviewH.Start)
	auth.GET("/interviews", interviewH.List)
	auth.GET("/interviews/:id", interviewH.Get)
	auth.GET("/interviews/:id/report", interviewH.Report)
	auth.POST("/interviews/:id/responses", interviewH.AppendResponse)
	auth.POST("/interviews/:id/finish", interviewH.Finish)
	auth.POST("/interviews/:id/abandon", interviewH.Abandon)

	auth.POST("/ai/questions", generationH.Generate)

	auth.POST("/mentors/:id/bookings", mentorH.Book)

	auth.POST("/threads", threadH.Create)
	auth.POST("/threads/:id/comments", threadH.Comment)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
