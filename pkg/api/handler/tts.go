package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akarpov/ai-relay/pkg/api/response"
	"github.com/akarpov/ai-relay/pkg/domain"
	"github.com/akarpov/ai-relay/pkg/logger"
)

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

type tts struct {
	synthesizer SpeechSynthesizer
	writer      response.JSONResponseWriter
}

func NewTTS(synthesizer SpeechSynthesizer) *tts {
	return &tts{
		synthesizer: synthesizer,
	}
}

type ttsRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Synthesize converts text to speech and streams the WAV bytes back as
// the response body. A synthesis failure before anything is written
// yields a structured 500; a write failure after the header is
// committed can only be logged — the client sees a truncated stream.
func (h *tts) Synthesize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Text == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Text is required", nil)
		return
	}

	voice := req.Voice
	if voice == "" {
		voice = domain.DefaultVoice
	}

	w.Header().Set("Content-Type", domain.AudioContentType)
	w.Header().Set("Transfer-Encoding", "chunked")

	audio, err := h.synthesizer.Synthesize(ctx, req.Text, voice)
	if err != nil {
		slog.ErrorContext(ctx, "generating speech", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate speech", err)
		return
	}

	if _, err := w.Write(audio); err != nil {
		// The header is committed by the first write, so the failure
		// cannot be turned into an error response anymore.
		slog.ErrorContext(ctx, "writing audio response", logger.Err(err))
	}
}
