package app

import (
	"cert_portal_backend/docs"
	"cert_portal_backend/internal/config"
	"cert_portal_backend/internal/middleware"

	"cert_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/quizzes/public", c.quiz.ListQuizzes)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/quizzes", c.quiz.ListQuizzes)
		authGroup.GET("/quiz/:id", c.quiz.GetQuiz)
		authGroup.POST("/quiz/:id/submit", c.quiz.Submit)

		authGroup.GET("/results", c.result.ListResults)
		authGroup.GET("/result/:id", c.result.GetResult)

		authGroup.GET("/certificate/:resultId", c.certificate.Download)
	}
}
