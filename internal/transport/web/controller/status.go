package controller

import (
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/domain"
)

type indexResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Index handles GET / with the server version and current time.
type Index struct {
	Version  string
	Clock    clock.Clock
	Location *time.Location
}

func (c Index) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	writeJSON(r.Context(), w, http.StatusOK, indexResponse{
		Status:    "online",
		Version:   c.Version,
		Timestamp: domain.FormatTimestamp(c.Clock.Now(), loc),
	})
}

type statusResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health. It never touches the store.
type Health struct{}

func (Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "online"})
}
