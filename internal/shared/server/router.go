package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvlens-backend/internal/resumes"
	"cvlens-backend/internal/shared/config"
	"cvlens-backend/internal/shared/server/middleware"
)

// RouterDeps carries the constructed handlers the router mounts.
type RouterDeps struct {
	Resumes *resumes.Handler
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered. Resume routes sit behind auth; health does not.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth())
	deps.Resumes.RegisterRoutes(api)

	return engine
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
