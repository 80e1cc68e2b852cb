package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/service"
)

// AIHandler exposes the AI assist endpoints.
type AIHandler struct {
	service *service.AIService
	logger  *zap.Logger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(svc *service.AIService, logger *zap.Logger) *AIHandler {
	return &AIHandler{service: svc, logger: logger}
}

// aiEndpoint adapts one AIService method to an http.HandlerFunc.
func aiEndpoint[Req, Resp any](h *AIHandler, call func(context.Context, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r); !ok {
			return
		}

		var req Req
		if !decodeJSON(w, r, maxBodyBytes, &req) {
			return
		}

		resp, err := call(r.Context(), req)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleSummarize handles POST /api/ai/summarize requests.
func (h *AIHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.Summarize)(w, r)
}

// HandleSuggestTitle handles POST /api/ai/suggest-title requests.
func (h *AIHandler) HandleSuggestTitle(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.SuggestTitle)(w, r)
}

// HandleImprove handles POST /api/ai/improve requests.
func (h *AIHandler) HandleImprove(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.Improve)(w, r)
}

// HandleSuggestCategory handles POST /api/ai/suggest-category requests.
func (h *AIHandler) HandleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.SuggestCategory)(w, r)
}

// HandleExpand handles POST /api/ai/expand requests.
func (h *AIHandler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.Expand)(w, r)
}

// HandleChat handles POST /api/ai/chat requests.
func (h *AIHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	aiEndpoint(h, h.service.Chat)(w, r)
}
