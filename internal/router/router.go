package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/handler"
	"github.com/placeprep/placeprep-backend/internal/middleware"
	"github.com/placeprep/placeprep-backend/internal/response"
	"github.com/placeprep/placeprep-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Test      *handler.TestHandler
	Result    *handler.ResultHandler
	Classroom *handler.ClassroomHandler
	Question  *handler.QuestionHandler
	Analytics *handler.AnalyticsHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group ──────────────────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		// Attempts
		studentAPI.POST("/tests/mock", handlers.Test.StartMock)
		studentAPI.POST("/tests/scheduled/:testId/start", handlers.Test.StartScheduled)
		studentAPI.GET("/sessions/:sessionId/paper", handlers.Test.GetPaper)

		// Termination and results
		studentAPI.POST("/sessions/submit", handlers.Result.Submit)
		studentAPI.POST("/sessions/auto-submit", handlers.Result.AutoSubmit)
		studentAPI.GET("/results", handlers.Result.History)
		studentAPI.GET("/results/:resultId", handlers.Result.Details)

		// Classrooms
		studentAPI.POST("/classrooms/join", handlers.Classroom.Join)
		studentAPI.GET("/classrooms", handlers.Classroom.ListMine)
		studentAPI.GET("/classrooms/:classroomId/tests", handlers.Classroom.ListTestsForStudent)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/student/sessions/:sessionId/proctor", handlers.WS.ProctorStream)
	}

	// ─── 4. HOD Group ──────────────────────────────────────────────────
	hodAPI := router.Group("/api/v1/hod")
	hodAPI.Use(middleware.RequireHODJWT(authService))
	{
		// Classrooms
		hodAPI.POST("/classrooms", handlers.Classroom.Create)
		hodAPI.GET("/classrooms", handlers.Classroom.List)
		hodAPI.GET("/classrooms/:classroomId", handlers.Classroom.Details)
		hodAPI.DELETE("/classrooms/:classroomId", handlers.Classroom.Delete)
		hodAPI.POST("/classrooms/:classroomId/join-code", handlers.Classroom.RegenerateJoinCode)
		hodAPI.DELETE("/classrooms/:classroomId/students/:studentId", handlers.Classroom.RemoveStudent)

		// Scheduled tests
		hodAPI.POST("/classrooms/:classroomId/tests", handlers.Classroom.ScheduleTest)
		hodAPI.GET("/classrooms/:classroomId/tests", handlers.Classroom.ListTests)
		hodAPI.GET("/tests/:testId/analysis", handlers.Analytics.AnalyzeTest)
		hodAPI.GET("/sessions/:sessionId/details", handlers.Analytics.StudentDetails)

		// Private question bank
		hodAPI.POST("/questions", handlers.Question.Add)
		hodAPI.GET("/questions", handlers.Question.List)
		hodAPI.GET("/questions/counts", handlers.Question.Counts)
		hodAPI.DELETE("/questions/:questionId", handlers.Question.Delete)
	}

	// ─── 5. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Global question bank
		adminAPI.GET("/questions", handlers.Question.GlobalList)
		adminAPI.GET("/questions/counts", handlers.Question.GlobalCounts)
		adminAPI.PUT("/questions", handlers.Question.GlobalReplace)
	}

	return router
}
