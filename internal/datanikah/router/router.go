// Package router registers the datanikah HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/handler"
	"github.com/kart-io/datanikah/pkg/infra/middleware"
	authmw "github.com/kart-io/datanikah/pkg/infra/middleware/auth"
)

// Handlers groups the handlers served by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Chat      *handler.ChatHandler
	Dashboard *handler.DashboardHandler
	Record    *handler.RecordHandler
	Health    *handler.HealthHandler
}

// Config carries the settings routes depend on.
type Config struct {
	// Verifier authenticates admin requests.
	Verifier authmw.Verifier
	// MaxUploadBytes caps spreadsheet uploads.
	MaxUploadBytes int64
	// AllowOrigins lists CORS origins.
	AllowOrigins []string
}

// Middlewares returns the global middleware chain in order.
func Middlewares(cfg Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(cfg.AllowOrigins...),
	}
}

// Register registers every route on r.
func Register(r gin.IRouter, h Handlers, cfg Config) {
	logger.Info("Registering datanikah routes...")

	r.GET("/healthz", h.Health.Healthz)
	r.GET("/version", h.Health.Version)

	authn := authmw.Authn(cfg.Verifier)

	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", authn, h.Auth.Logout)
			authGroup.GET("/me", authn, h.Auth.Me)
		}

		// 公开接口
		chat := v1.Group("/chat")
		{
			chat.POST("/sessions", h.Chat.StartSession)
			chat.GET("/sessions/:id", h.Chat.GetSession)
			chat.POST("/messages", h.Chat.SendMessage)
		}

		v1.GET("/records/search", h.Record.Search)

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/years", h.Dashboard.Years)
		}

		// 管理接口
		admin := v1.Group("/admin", authn)
		{
			records := admin.Group("/records")
			records.POST("/import", middleware.BodyLimit(cfg.MaxUploadBytes), h.Record.Import)
			records.GET("/search", h.Record.Search)
			records.GET("/recent", h.Record.Recent)
			records.GET("/recent/stream", h.Record.RecentStream)
			records.GET("/template", h.Record.Template)
		}
	}

	logger.Info("HTTP routes registered")
}
