package response_models

import (
	"strings"

	"tripsmith/internal/models/db_models"
)

// RunSummaryResponse is the list-view shape for persisted runs; the full
// payload stays behind the by-id endpoint.
type RunSummaryResponse struct {
	RunID     string   `json:"run_id"`
	SessionID string   `json:"session_id"`
	Cities    []string `json:"cities"`
	Nights    int      `json:"nights"`
	CreatedAt int64    `json:"created_at"`
}

func ToRunSummaryResponse(run db_models.ItineraryRun) RunSummaryResponse {
	var cities []string
	if run.Cities != "" {
		cities = strings.Split(run.Cities, ",")
	}
	return RunSummaryResponse{
		RunID:     run.ID.String(),
		SessionID: run.SessionID,
		Cities:    cities,
		Nights:    run.Nights,
		CreatedAt: run.CreatedAt,
	}
}
