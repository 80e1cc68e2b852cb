package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/llm"
	"github.com/notezipper/notezipper-go/internal/metrics"
	"github.com/notezipper/notezipper-go/internal/model"
)

// AI request kinds, also used as metric labels.
const (
	KindSummarize       = "summarize"
	KindSuggestTitle    = "suggest-title"
	KindImprove         = "improve"
	KindSuggestCategory = "suggest-category"
	KindExpand          = "expand"
	KindChat            = "chat"
)

const (
	summarizeCap = 8000
	titleCap     = 4000
	improveCap   = 6000
	categoryCap  = 3000
	expandCap    = 3000
	chatHistory  = 10
)

const (
	promptSummarize = "You are a helpful assistant. Summarize the given note in 2-4 concise sentences. Return only the summary, no preamble."
	promptTitle     = "You are a helpful assistant. Suggest a short, clear title (3-8 words) for this note. Return only the title, nothing else. No quotes."
	promptCategory  = "You are a helpful assistant. Suggest a single category word or short phrase (e.g. Work, Personal, Ideas, Study, Shopping) for this note. Return only the category, one or two words, nothing else."
	promptExpand    = "You are a helpful writing assistant. Continue the following note naturally in 1-3 paragraphs. Match the tone and style. Return only the new continuation text, no preamble."

	promptImprovePrefix = "You are a helpful writing assistant. "
	promptFormal        = "Rewrite the following text in a more formal, professional tone. Keep the same meaning and structure. Return only the rewritten text."
	promptSimple        = "Rewrite the following text in simpler, clearer language. Keep the same meaning. Return only the rewritten text."
	promptGrammar       = "Fix grammar, spelling, and punctuation. Improve clarity. Return only the improved text."

	promptAssistant = `You are a friendly in-app assistant for "Note Zipper", a notes app. You help users with: creating and organizing notes, using categories, search, and tips. Keep answers short and helpful (2-4 sentences unless they ask for more). If asked about features, mention: create/edit/delete notes, categories, markdown, search, and AI tools like summarize, suggest title, improve text, and expand note.`
)

const (
	msgContentRequired       = "Content is required"
	msgTitleOrContentMissing = "Title or content is required"
	msgMessageRequired       = "Message is required"
	msgAIUnavailable         = "AI service unavailable"
)

// AIService turns note text into fixed prompts for the completion provider.
// It never touches the note store.
type AIService struct {
	llm     Completer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAIService creates a new AIService.
func NewAIService(llm Completer, m *metrics.Metrics, logger *zap.Logger) *AIService {
	return &AIService{llm: llm, metrics: m, logger: logger}
}

func (s *AIService) Summarize(ctx context.Context, req model.ContentRequest) (model.SummaryResponse, error) {
	text, err := requireContent(req.Content)
	if err != nil {
		return model.SummaryResponse{}, err
	}

	reply, err := s.complete(ctx, KindSummarize, llm.Request{
		Messages:    prompt(promptSummarize, firstRunes(text, summarizeCap)),
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		return model.SummaryResponse{}, err
	}
	return model.SummaryResponse{Summary: reply}, nil
}

// SuggestTitle proposes a short title and strips the quotes models tend to
// wrap it in.
func (s *AIService) SuggestTitle(ctx context.Context, req model.ContentRequest) (model.TitleResponse, error) {
	text, err := requireContent(req.Content)
	if err != nil {
		return model.TitleResponse{}, err
	}

	reply, err := s.complete(ctx, KindSuggestTitle, llm.Request{
		Messages:    prompt(promptTitle, firstRunes(text, titleCap)),
		MaxTokens:   64,
		Temperature: 0.5,
	})
	if err != nil {
		return model.TitleResponse{}, err
	}
	return model.TitleResponse{Title: stripQuotes(reply)}, nil
}

// Improve rewrites the text in the requested style: "formal", "simple" or,
// for anything else, a grammar and clarity pass.
func (s *AIService) Improve(ctx context.Context, req model.ImproveRequest) (model.ImproveResponse, error) {
	text, err := requireContent(req.Content)
	if err != nil {
		return model.ImproveResponse{}, err
	}

	reply, err := s.complete(ctx, KindImprove, llm.Request{
		Messages:    prompt(promptImprovePrefix+stylePrompt(req.Style), firstRunes(text, improveCap)),
		MaxTokens:   2048,
		Temperature: 0.4,
	})
	if err != nil {
		return model.ImproveResponse{}, err
	}
	return model.ImproveResponse{Content: reply}, nil
}

func (s *AIService) SuggestCategory(ctx context.Context, req model.CategoryRequest) (model.CategoryResponse, error) {
	parts := make([]string, 0, 2)
	for _, p := range []string{req.Title, req.Content} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return model.CategoryResponse{}, apperr.Validation(msgTitleOrContentMissing)
	}

	reply, err := s.complete(ctx, KindSuggestCategory, llm.Request{
		Messages:    prompt(promptCategory, firstRunes(text, categoryCap)),
		MaxTokens:   32,
		Temperature: 0.5,
	})
	if err != nil {
		return model.CategoryResponse{}, err
	}
	return model.CategoryResponse{Category: reply}, nil
}

// Expand continues the note from its tail, so only the last part of a long
// note is sent.
func (s *AIService) Expand(ctx context.Context, req model.ContentRequest) (model.ExpandResponse, error) {
	text, err := requireContent(req.Content)
	if err != nil {
		return model.ExpandResponse{}, err
	}

	reply, err := s.complete(ctx, KindExpand, llm.Request{
		Messages:    prompt(promptExpand, lastRunes(text, expandCap)),
		MaxTokens:   512,
		Temperature: 0.6,
	})
	if err != nil {
		return model.ExpandResponse{}, err
	}
	return model.ExpandResponse{Continuation: reply}, nil
}

// Chat answers a question about the app, replaying at most the last ten
// turns of history.
func (s *AIService) Chat(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.ChatResponse{}, apperr.Validation(msgMessageRequired)
	}
	if err := model.Validate(req); err != nil {
		return model.ChatResponse{}, err
	}

	history := req.History
	if len(history) > chatHistory {
		history = history[len(history)-chatHistory:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: promptAssistant})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	reply, err := s.complete(ctx, KindChat, llm.Request{
		Messages:    messages,
		MaxTokens:   512,
		Temperature: 0.6,
	})
	if err != nil {
		return model.ChatResponse{}, err
	}
	return model.ChatResponse{Reply: reply}, nil
}

var errBlankCompletion = errors.New("completion is blank")

func (s *AIService) complete(ctx context.Context, kind string, req llm.Request) (string, error) {
	reply, err := s.llm.Complete(ctx, req)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errBlankCompletion
	}
	if err != nil {
		s.metrics.ObserveAI(kind, metrics.OutcomeError)
		s.logger.Error("ai request failed", zap.String("kind", kind), zap.Error(err))
		return "", apperr.Upstream(msgAIUnavailable, err)
	}

	s.metrics.ObserveAI(kind, metrics.OutcomeOK)
	return strings.TrimSpace(reply), nil
}

func prompt(system, user string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

func requireContent(content string) (string, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return "", apperr.Validation(msgContentRequired)
	}
	return text, nil
}

func stylePrompt(style string) string {
	switch style {
	case "formal":
		return promptFormal
	case "simple":
		return promptSimple
	default:
		return promptGrammar
	}
}

// stripQuotes removes one leading and one trailing quote character.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, `'`) {
		s = s[1:]
	}
	if strings.HasSuffix(s, `"`) || strings.HasSuffix(s, `'`) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

// firstRunes returns at most n leading code points of s.
func firstRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// lastRunes returns at most n trailing code points of s.
func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
