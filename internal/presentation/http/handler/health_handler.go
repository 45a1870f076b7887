package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler reports liveness of the API and its backing services
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler. Nil checks are skipped.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{checks: active}
}

// Check pings every dependency and answers 503 if any is down
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	services := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			services[name] = "down: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		services[name] = "up"
	}

	data := gin.H{"status": "ok", "services": services}
	if status != http.StatusOK {
		data["status"] = "degraded"
		response.ErrorWithData(c, status, "Service degraded", data)
		return
	}
	response.OK(c, "Service is healthy", data)
}
