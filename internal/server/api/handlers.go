package api

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logstat/internal/storage"
	"logstat/pkg/model"
)

const maxQueryLimit = 2000

type Handlers struct {
	store   storage.Store
	summary model.Summary
	charts  []byte
}

// NewHandlers 的 summary 与 charts 在服务期间只读。
func NewHandlers(store storage.Store, summary model.Summary, charts []byte) *Handlers {
	return &Handlers{store: store, summary: summary, charts: charts}
}

func (h *Handlers) Charts(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.charts)
}

func (h *Handlers) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.summary)
}

func (h *Handlers) Query(c *gin.Context) {
	ip := c.Query("ip")
	if net.ParseIP(ip) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ip 参数非法"})
		return
	}

	limit := storage.DefaultQueryLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxQueryLimit {
			limit = v
		}
	}

	rows, err := h.store.QueryByIP(c.Request.Context(), ip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败：" + err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}
