package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/metrics"
	"github.com/notezipper/notezipper-go/internal/middleware"
	"github.com/notezipper/notezipper-go/internal/service"
)

// RouterConfig collects what the HTTP surface depends on.
type RouterConfig struct {
	Auth        *service.AuthService
	Notes       *service.NoteService
	AI          *service.AIService
	Tokens      middleware.TokenVerifier
	Metrics     *metrics.Metrics
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter wires middleware and routes of the API.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth, cfg.Logger)
	noteHandler := NewNoteHandler(cfg.Notes, cfg.Logger)
	aiHandler := NewAIHandler(cfg.AI, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.HandleRegister)
		r.Post("/users/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.Tokens))

			r.Get("/users/profile", authHandler.HandleProfile)
			r.Post("/users/profile", authHandler.HandleUpdateProfile)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.HandleList)
				r.Post("/create", noteHandler.HandleCreate)
				r.Get("/{id}", noteHandler.HandleGet)
				r.Put("/{id}", noteHandler.HandleUpdate)
				r.Delete("/{id}", noteHandler.HandleDelete)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/summarize", aiHandler.HandleSummarize)
				r.Post("/suggest-title", aiHandler.HandleSuggestTitle)
				r.Post("/improve", aiHandler.HandleImprove)
				r.Post("/suggest-category", aiHandler.HandleSuggestCategory)
				r.Post("/expand", aiHandler.HandleExpand)
				r.Post("/chat", aiHandler.HandleChat)
			})
		})
	})

	return r
}
