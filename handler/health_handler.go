package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-budget-api/common"
	"go-budget-api/logger"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  Pings the database and reports whether the service is healthy.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil || h.db.PingContext(ctx) != nil {
		logger.Log.Error("Database connection check failed")
		common.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"status":              "unhealthy",
			"database_connection": "failed",
			"error":               "Unable to connect to the database",
			"message":             "UNHEALTHY",
		})
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{
		"status":              "healthy",
		"database_connection": "successful",
		"current_time":        time.Now().UTC().Format(time.RFC3339),
		"message":             "HEALTHY",
	})
}
