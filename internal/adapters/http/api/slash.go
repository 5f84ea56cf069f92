// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/ringthegong/gong/internal/domain/render"
	"github.com/ringthegong/gong/pkg/logger"
	"github.com/ringthegong/gong/pkg/metrics"
)

// SlashHandler handles Slack slash-command requests.
type SlashHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewSlashHandler creates a new slash-command handler.
func NewSlashHandler(deps Dependencies) *SlashHandler {
	return &SlashHandler{deps: deps, logger: logger.Named("api")}
}

// HandleCommand handles POST /slack/command requests.
//
// Only transport failures (wrong method, bad token, unreadable form)
// produce non-200 statuses. Every application outcome, validation errors
// included, answers 200 with a Slack-renderable payload; store and
// unexpected failures collapse to the generic ephemeral message with the
// cause logged.
func (h *SlashHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error(r.Context(), "panic while handling command", logger.Any("panic", rec))
			writeJSON(w, http.StatusOK, render.InternalError())
		}
	}()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if expected := h.deps.VerifyToken(); expected != "" && r.PostFormValue("token") != expected {
		metrics.RecordAuthFailure()
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
		return
	}

	msg, err := h.deps.Dispatch(r.Context(), r.PostFormValue("text"))
	if err != nil {
		h.logger.Error(r.Context(), "command failed", logger.Error(err))
		msg = render.InternalError()
	}
	writeJSON(w, http.StatusOK, msg)
}
