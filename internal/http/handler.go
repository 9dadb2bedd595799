package httpapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/episodarr/internal/logger"
)

// Notifier is the set of notification operations exposed over HTTP.
type Notifier interface {
	NotifySnatch(ctx context.Context, epName string) bool
	NotifyDownload(ctx context.Context, epName string) bool
	NotifySubtitleDownload(ctx context.Context, epName, lang string) bool
	NotifyUpdate(ctx context.Context, newVersion string) bool
	NotifyLogin(ctx context.Context, ipAddress string) bool
	Test(ctx context.Context) bool
}

type Handler struct {
	Notifier Notifier
	Logger   *logger.Logger
}

func NewHandler(n Notifier, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.Default()
	}
	return &Handler{
		Notifier: n,
		Logger:   l.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/notify", func(r chi.Router) {
		r.Post("/test", h.TestNotification)
		r.Post("/{event}", h.Notify)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}
