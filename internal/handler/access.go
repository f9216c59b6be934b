package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/services"
	"quill/internal/httputil"
)

// accessRequest is the wire form of a grant or edit: the target user and a
// single-character level code.
type accessRequest struct {
	UserID int64  `json:"user_id"`
	Level  string `json:"level"`
}

// AccessHandler handles per-post access grant HTTP requests.
type AccessHandler struct {
	accessService services.AccessService
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler.
func NewAccessHandler(accessService services.AccessService, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
		logger:        logger,
	}
}

// GrantAccess grants the target user a level on the post. When the pair
// already has a grant, the create conflicts and the handler transparently
// retries as an edit, so the endpoint is idempotent by fallback.
// POST /api/posts/{id}/access
func (h *AccessHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	req, level, ok := parseAccessRequest(w, r)
	if !ok {
		return
	}

	grant, err := h.accessService.Grant(r.Context(), actor, req.UserID, id, level)
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			handleError(w, err)
			return
		}

		h.logger.Debug("grant exists, retrying as edit",
			"post_id", id,
			"user_id", req.UserID,
		)

		grant, err = h.accessService.Edit(r.Context(), actor, req.UserID, id, level)
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusOK, grant)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, grant)
}

// EditAccess changes the level of an existing grant.
// PATCH /api/posts/{id}/access
func (h *AccessHandler) EditAccess(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	req, level, ok := parseAccessRequest(w, r)
	if !ok {
		return
	}

	grant, err := h.accessService.Edit(r.Context(), actor, req.UserID, id, level)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, grant)
}

// parseAccessRequest decodes the body and validates the level code before
// anything reaches the authorization engine.
func parseAccessRequest(w http.ResponseWriter, r *http.Request) (*accessRequest, models.AccessLevel, bool) {
	var req accessRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return nil, "", false
	}

	if req.UserID == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "user_id is required")
		return nil, "", false
	}

	level, err := models.ParseAccessLevel(req.Level)
	if err != nil {
		handleError(w, err)
		return nil, "", false
	}

	return &req, level, true
}
