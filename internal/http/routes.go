package httpapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/episodarr/internal/http/dto"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	sent := h.Notifier.Test(r.Context())
	h.writeJSON(w, http.StatusOK, dto.NotifyResponse{Sent: sent})
}

func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	event := chi.URLParam(r, "event")
	if !dto.KnownEvent(event) {
		http.Error(w, "unknown event: "+event, http.StatusNotFound)
		return
	}

	var req dto.NotifyRequest
	// an empty body is an empty request; update and login may need nothing else
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.Validate(event); len(errs) > 0 {
		h.Logger.Warn("Invalid notification request", "event", event, "errors", dto.ToResponse(errs))
		h.writeJSON(w, http.StatusBadRequest, dto.ToMap(errs))
		return
	}

	ctx := r.Context()
	var sent bool
	switch event {
	case dto.EventSnatch:
		sent = h.Notifier.NotifySnatch(ctx, req.Name)
	case dto.EventDownload:
		sent = h.Notifier.NotifyDownload(ctx, req.Name)
	case dto.EventSubtitle:
		sent = h.Notifier.NotifySubtitleDownload(ctx, req.Name, req.Lang)
	case dto.EventUpdate:
		sent = h.Notifier.NotifyUpdate(ctx, req.Version)
	case dto.EventLogin:
		sent = h.Notifier.NotifyLogin(ctx, req.IP)
	}

	h.Logger.Debug("Notification handled", "event", event, "sent", sent)
	h.writeJSON(w, http.StatusOK, dto.NotifyResponse{Sent: sent})
}
