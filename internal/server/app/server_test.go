package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"logstat/internal/server/api"
	"logstat/internal/storage/memory"
	"logstat/pkg/model"
)

func TestRouterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := api.NewHandlers(memory.NewStore(), model.Summary{}, []byte("ok"))
	r := NewRouter(h)

	for _, target := range []string{"/", "/api/v1/summary", "/api/v1/query?ip=127.0.0.1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: status=%d", target, w.Code)
		}
	}
}

func TestNewServerDefaultAddr(t *testing.T) {
	s := NewServer(Config{}, api.NewHandlers(memory.NewStore(), model.Summary{}, nil))
	if s.httpServer.Addr != ":8080" {
		t.Fatalf("addr=%s", s.httpServer.Addr)
	}
}
