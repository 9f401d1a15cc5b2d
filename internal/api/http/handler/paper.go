package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/api/http/response"
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// PaperService defines paper lifecycle operations.
type PaperService interface {
	Submit(ctx context.Context, params model.SubmitPaperParams) (model.Paper, error)
	Update(ctx context.Context, id uuid.UUID, actor model.Identity, params model.UpdatePaperParams) (model.Paper, error)
	Remove(ctx context.Context, id uuid.UUID, actor model.Identity) error
	SetStatus(ctx context.Context, id uuid.UUID, actor model.Identity, status string) (model.Paper, error)
	ListAll(ctx context.Context, actor model.Identity) ([]model.Paper, error)
	ListByAuthor(ctx context.Context, actor model.Identity, email string) ([]model.Paper, error)
}

// Paper handles HTTP endpoints for paper submissions.
type Paper struct {
	paperService   PaperService
	contextManager model.ContextManager
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewPaper creates a new Paper handler. maxUploadBytes bounds a multipart
// request body.
func NewPaper(paperService PaperService, contextManager model.ContextManager, maxUploadBytes int64, logger *logger.Logger) *Paper {
	return &Paper{
		paperService:   paperService,
		contextManager: contextManager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// Submit stores a new paper from a multipart form.
func (h *Paper) Submit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	form, err := readPaperForm(w, r, h.maxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer form.Close()

	paper, err := h.paperService.Submit(r.Context(), model.SubmitPaperParams{
		FullName:      deref(form.FullName),
		Email:         deref(form.Email),
		Title:         deref(form.Title),
		Abstract:      deref(form.Abstract),
		Keywords:      form.Keywords,
		Primary:       form.Primary,
		Supplementary: form.Supplementary,
	})
	if err != nil {
		h.fail(w, "submit", err)
		return
	}

	response.JSON(w, http.StatusCreated, "Paper submitted successfully", paper)
}

// Update edits a paper and resets its status.
func (h *Paper) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := paperID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	form, err := readPaperForm(w, r, h.maxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer form.Close()

	paper, err := h.paperService.Update(r.Context(), id, identity, model.UpdatePaperParams{
		FullName:      form.FullName,
		Title:         form.Title,
		Abstract:      form.Abstract,
		Keywords:      form.Keywords,
		Primary:       form.Primary,
		Supplementary: form.Supplementary,
	})
	if err != nil {
		h.fail(w, "update", err)
		return
	}

	response.JSON(w, http.StatusOK, "Paper updated successfully, status reset to submitted", paper)
}

// Delete removes a paper.
func (h *Paper) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := paperID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.paperService.Remove(r.Context(), id, identity); err != nil {
		h.fail(w, "delete", err)
		return
	}

	response.JSON(w, http.StatusOK, "Paper deleted successfully", nil)
}

// SetStatus changes the review status of a paper.
func (h *Paper) SetStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := paperID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	paper, err := h.paperService.SetStatus(r.Context(), id, identity, req.Status)
	if err != nil {
		h.fail(w, "status change", err)
		return
	}

	response.JSON(w, http.StatusOK, "Paper status updated and author notified", paper)
}

// ListAll returns every paper.
func (h *Paper) ListAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	papers, err := h.paperService.ListAll(r.Context(), identity)
	if err != nil {
		h.fail(w, "list", err)
		return
	}

	response.JSON(w, http.StatusOK, "Papers fetched successfully", nonNil(papers))
}

// ListByAuthor returns the papers of the author in the path.
func (h *Paper) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	papers, err := h.paperService.ListByAuthor(r.Context(), identity, chi.URLParam(r, "email"))
	if err != nil {
		h.fail(w, "list by author", err)
		return
	}

	response.JSON(w, http.StatusOK, "User papers fetched successfully", nonNil(papers))
}

func (h *Paper) identity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apierrors.NewErrMissingAuthorizationToken())
		return model.Identity{}, false
	}
	return identity, true
}

func (h *Paper) fail(w http.ResponseWriter, op string, err error) {
	if apierrors.KindOf(err) == apierrors.KindInternal {
		h.logger.Error("Paper handler: "+op+" failed",
			"error", err.Error())
	} else {
		h.logger.Debug("Paper handler: "+op+" rejected",
			"error", err.Error())
	}
	response.Error(w, err)
}

func nonNil(papers []model.Paper) []model.Paper {
	if papers == nil {
		return []model.Paper{}
	}
	return papers
}
