package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logstat/internal/server/api"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg Config, h *api.Handlers) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func NewRouter(h *api.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.Charts)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/summary", h.Summary)
		v1.GET("/query", h.Query)
	}
	return router
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
