package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/snipstash-backend/internal/config"
	"github.com/ignatzorin/snipstash-backend/internal/http/handlers"
	"github.com/ignatzorin/snipstash-backend/internal/http/middleware"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	snippetHandler *handlers.SnippetHandler,
	blogHandler *handlers.BlogHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
	users middleware.UserGetter,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/send-otp", authHandler.SendOTP)
		authGroup.POST("/verify-otp", authHandler.VerifyOTP)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager, users))
	{
		protectedAuth.GET("/profile", authHandler.Profile)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, users))
	{
		protected.POST("/snippets", snippetHandler.Create)
		protected.GET("/snippets", snippetHandler.List)
		// /search регистрируется раньше /:id, иначе gin примет "search" за id
		protected.GET("/snippets/search", snippetHandler.Search)
		protected.GET("/snippets/:id", middleware.UUIDValidator("id"), snippetHandler.GetByID)
		protected.PUT("/snippets/:id", middleware.UUIDValidator("id"), snippetHandler.Update)
		protected.DELETE("/snippets/:id", middleware.UUIDValidator("id"), snippetHandler.Delete)

		protected.POST("/blogs", blogHandler.Create)
		protected.GET("/blogs", blogHandler.List)
		protected.GET("/blogs/:id", middleware.UUIDValidator("id"), blogHandler.GetByID)
		protected.PUT("/blogs/:id", middleware.UUIDValidator("id"), blogHandler.Update)
		protected.DELETE("/blogs/:id", middleware.UUIDValidator("id"), blogHandler.Delete)
		protected.PUT("/blogs/:id/toggle-read", middleware.UUIDValidator("id"), blogHandler.ToggleRead)
	}

	return r
}
