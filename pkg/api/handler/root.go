package handler

import (
	"net/http"

	"github.com/akarpov/ai-relay/pkg/api/response"
)

type root struct {
	writer response.JSONResponseWriter
}

func NewRoot() *root {
	return &root{}
}

// Identify answers the liveness probe with a fixed identity payload.
func (h *root) Identify(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{
		"message": "AI Relay Server is running",
	})
}
