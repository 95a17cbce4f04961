package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-api/internal/model"
)

// ProfileService is what ProfileHandler needs from the service layer.
// Declaring it here, on the consumer side, lets tests pass a mock.
type ProfileService interface {
	Current(ctx context.Context) (*model.Profile, error)
	Create(ctx context.Context, in model.ProfileInput) (*model.Profile, error)
	Update(ctx context.Context, in model.ProfileInput) (*model.Profile, error)
	List(ctx context.Context, req model.PageRequest) (*model.Page[model.Profile], error)
}

// ProfileHandler serves the owner profile endpoints.
type ProfileHandler struct {
	svc         ProfileService
	maxPageSize int
	logger      *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler. maxPageSize caps ?limit
// on the list endpoint; zero means no cap.
func NewProfileHandler(svc ProfileService, maxPageSize int, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, maxPageSize: maxPageSize, logger: logger}
}

// HandleGet returns the current profile.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: p})
}

// HandleCreate appends a new profile, which becomes the current one.
//
// HTTP: POST /api/profile
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Debug("rejected request body", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Profile created successfully",
		Data:    p,
	})
}

// HandleUpdate replaces every field of the current profile.
//
// HTTP: PUT /api/profile
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Debug("rejected request body", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	p, err := h.svc.Update(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Profile updated successfully",
		Data:    p,
	})
}

// HandleList returns every stored profile row, newest first.
//
// HTTP: GET /api/profiles?page=1&limit=10
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), pageRequest(r, h.maxPageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       page.Items,
		Pagination: &page.Pagination,
	})
}
