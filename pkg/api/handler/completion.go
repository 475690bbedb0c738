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

type ChatCompleter interface {
	CompleteChat(ctx context.Context, messages []domain.ChatMessage) (*domain.Completion, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type completion struct {
	completer ChatCompleter
	images    ImageGenerator
	writer    response.JSONResponseWriter
}

func NewCompletion(completer ChatCompleter, images ImageGenerator) *completion {
	return &completion{
		completer: completer,
		images:    images,
	}
}

type completionRequest struct {
	Messages      []domain.ChatMessage `json:"messages"`
	GenerateImage bool                 `json:"generateImage"`
}

type completionResponse struct {
	Message string       `json:"message"`
	Usage   domain.Usage `json:"usage"`
	Image   string       `json:"image,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Generate forwards the conversation to the chat-completion provider
// and, when requested, derives an image from the generated text. Image
// failure degrades to partial success; completion failure aborts the
// request.
func (h *completion) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// An empty messages sequence is passed through; the provider
	// performs its own validation.
	result, err := h.completer.CompleteChat(ctx, req.Messages)
	if err != nil {
		slog.ErrorContext(ctx, "generating completion", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate completion", err)
		return
	}

	resp := completionResponse{
		Message: result.Text,
		Usage:   result.Usage,
	}

	if req.GenerateImage {
		imageURL, err := h.images.GenerateImage(ctx, result.Text)
		if err != nil {
			slog.ErrorContext(ctx, "generating image", logger.Err(err))
			resp.Error = "Image generation failed"
		} else {
			resp.Image = imageURL
		}
	}

	h.writer.WriteSuccessResponse(w, resp)
}
