package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-api/internal/model"
)

type ContactService interface {
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context, req model.PageRequest) (*model.Page[model.ContactMessage], error)
}

// ContactHandler serves the contact form and the owner's inbox.
type ContactHandler struct {
	svc         ContactService
	maxPageSize int
	logger      *slog.Logger
}

func NewContactHandler(svc ContactService, maxPageSize int, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, maxPageSize: maxPageSize, logger: logger}
}

// HandleSubmit stores a visitor message. The stored record is not echoed.
//
// HTTP: POST /api/contact
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Debug("rejected request body", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	if _, err := h.svc.Submit(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Message sent successfully")
}

// HandleList returns stored messages, newest first.
//
// HTTP: GET /api/messages?page=1&limit=10
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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
