package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpH "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/handlers"
	httpMW "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
)

type RouterConfig struct {
	Logger      *zap.Logger
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler        *httpH.AuthHandler
	QuizHandler        *httpH.QuizHandler
	CertificateHandler *httpH.CertificateHandler
	AdminHandler       *httpH.AdminHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.CORSOrigins))
	}

	// Health
	r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := r.Group("/api")
	{
		// Auth (public)
		api.POST("/signup", cfg.AuthHandler.Signup)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/me", cfg.AuthHandler.Me)

		// Quiz wizard
		protected.POST("/quiz/start", cfg.QuizHandler.Start)
		protected.GET("/quiz", cfg.QuizHandler.Current)
		protected.POST("/quiz/answer", cfg.QuizHandler.Answer)
		protected.POST("/quiz/prev", cfg.QuizHandler.Prev)
		protected.POST("/quiz/next", cfg.QuizHandler.Next)
		protected.POST("/quiz/submit", cfg.QuizHandler.Submit)

		protected.GET("/certificate", cfg.CertificateHandler.Download)
	}

	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/questions", cfg.AdminHandler.ListQuestions)
		admin.POST("/questions", cfg.AdminHandler.AddQuestion)
		admin.PUT("/questions/:index", cfg.AdminHandler.UpdateQuestion)
		admin.DELETE("/questions/:index", cfg.AdminHandler.DeleteQuestion)

		admin.GET("/roster", cfg.AdminHandler.ListRoster)
		admin.POST("/roster/upload", cfg.AdminHandler.UploadRoster)

		admin.GET("/certified", cfg.AdminHandler.CertifiedUsers)
		admin.GET("/certificates.zip", cfg.AdminHandler.CertificatesZip)
	}

	return r
}
