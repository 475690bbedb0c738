package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akarpov/ai-relay/pkg/logger"
)

type JSONResponseWriter struct{}

func (j *JSONResponseWriter) WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding success response", logger.Err(err))
	}
}

// WriteErrorResponse writes an error envelope. The details string is
// derived from err and omitted when err is nil.
func (j *JSONResponseWriter) WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.Error("encoding error response", logger.Err(encErr))
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
