package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/paperdesk/internal/api/http/response"
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
)

// Pinger checks a downstream dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles liveness and readiness probes.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Check reports that the process serves requests.
func (h *Health) Check(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, "Health check passed", healthStatus{Status: "ok"})
}

// Heart additionally pings the database.
func (h *Health) Heart(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database ping failed",
			"error", err.Error())
		response.Error(w, apierrors.NewInternal("Database is unreachable"))
		return
	}
	response.JSON(w, http.StatusOK, "Heart check passed", healthStatus{Status: "ok", Database: "ok"})
}
