package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/habitkeeper-server/internal/apierrors"
	"github.com/dtroode/habitkeeper-server/internal/model"
)

func handleError(w http.ResponseWriter, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		body := map[string]any{"error": apiErr.Message}
		if apiErr.Completion != nil {
			body["completion"] = completionSummary{
				ID:          apiErr.Completion.ID.String(),
				Date:        apiErr.Completion.Date,
				CompletedAt: apiErr.Completion.CompletedAt,
			}
		}
		writeJSON(w, apiErr.HTTPCode, body)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	default:
		// Internal detail stays in the logs, never in the response.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
