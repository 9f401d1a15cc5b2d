package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// Paper manages submissions, their documents and review status.
//
// Steps that touch both the store and the blob store are not atomic: a crash
// between them may leave an orphaned blob behind.
type Paper struct {
	papers   model.PaperStore
	blobs    model.BlobStore
	policy   *Policy
	notifier model.Notifier
	logger   *logger.Logger

	now func() time.Time
}

func NewPaper(
	papers model.PaperStore,
	blobs model.BlobStore,
	policy *Policy,
	notifier model.Notifier,
	logger *logger.Logger,
) *Paper {
	return &Paper{
		papers:   papers,
		blobs:    blobs,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit uploads the documents and stores a new paper with status Submitted.
// Failing to upload the primary document aborts the submission; a failed
// supplementary upload is logged and the slot left empty.
func (s *Paper) Submit(ctx context.Context, params model.SubmitPaperParams) (model.Paper, error) {
	keywords := model.ParseKeywords(params.Keywords)
	if blank(params.FullName) || blank(params.Email) || blank(params.Title) || blank(params.Abstract) || len(keywords) == 0 {
		return model.Paper{}, apierrors.NewBadRequest("All fields except supplementary PDF are required")
	}
	if params.Primary == nil {
		return model.Paper{}, apierrors.NewBadRequest("PDF file is required")
	}
	email, ok := model.ParseEmail(params.Email)
	if !ok {
		return model.Paper{}, apierrors.NewBadRequest("Invalid email address")
	}
	if err := checkPDF(params.Primary, params.Supplementary); err != nil {
		return model.Paper{}, err
	}

	s.logger.Debug("Paper service: submitting paper",
		"email", email,
		"title", params.Title)

	primary, err := s.blobs.Upload(ctx, *params.Primary)
	if err != nil {
		s.logger.Error("Paper service: failed to upload primary document",
			"email", email,
			"filename", params.Primary.Filename,
			"error", err.Error())
		return model.Paper{}, apierrors.NewInternal("Failed to upload PDF file")
	}

	now := s.now()
	paper := model.Paper{
		ID:        uuid.New(),
		FullName:  strings.TrimSpace(params.FullName),
		Email:     email,
		Title:     strings.TrimSpace(params.Title),
		Abstract:  strings.TrimSpace(params.Abstract),
		Keywords:  keywords,
		Status:    model.PaperStatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	paper.SetPrimary(primary)

	if params.Supplementary != nil {
		supplementary, err := s.blobs.Upload(ctx, *params.Supplementary)
		if err != nil {
			s.logger.Warn("Paper service: failed to upload supplementary document",
				"email", email,
				"filename", params.Supplementary.Filename,
				"error", err.Error())
		} else {
			paper.SetSupplementary(supplementary)
		}
	}

	created, err := s.papers.Create(ctx, paper)
	if err != nil {
		s.logger.Error("Paper service: failed to create paper",
			"email", email,
			"error", err.Error())
		s.deleteBlobs(ctx, paper)
		return model.Paper{}, fmt.Errorf("failed to create paper: %w", err)
	}

	s.notifier.Notify(ctx, paperSubmittedMessage(created, s.policy.AdminEmail()))

	s.logger.Info("Paper service: paper submitted",
		"paper_id", created.ID,
		"email", created.Email)

	return created, nil
}

// Update applies a partial edit by the owner or the admin and resets the
// status to Submitted. A replaced document is deleted from the blob store
// once the paper points at the new one; a failed re-upload keeps the old
// document in place.
func (s *Paper) Update(ctx context.Context, id uuid.UUID, actor model.Identity, params model.UpdatePaperParams) (model.Paper, error) {
	paper, err := s.getPaper(ctx, id)
	if err != nil {
		return model.Paper{}, err
	}
	if !s.policy.CanMutate(actor, paper) {
		s.logger.Info("Paper service: edit forbidden",
			"paper_id", id,
			"actor", actor.Email)
		return model.Paper{}, apierrors.NewForbidden("You cannot edit this paper")
	}
	if err := checkPDF(params.Primary, params.Supplementary); err != nil {
		return model.Paper{}, err
	}

	status := model.PaperStatusSubmitted
	patch := model.PaperPatch{
		FullName: trimmed(params.FullName),
		Title:    trimmed(params.Title),
		Abstract: trimmed(params.Abstract),
		Status:   &status,
	}
	if params.Keywords != nil {
		if keywords := model.ParseKeywords(params.Keywords); len(keywords) > 0 {
			patch.Keywords = keywords
		}
	}

	var stale []string
	if params.Primary != nil {
		if blob, ok := s.reupload(ctx, id, *params.Primary); ok {
			patch.Primary = &blob
			stale = append(stale, paper.PDFStorageID)
		}
	}
	if params.Supplementary != nil {
		if blob, ok := s.reupload(ctx, id, *params.Supplementary); ok {
			patch.Supplementary = &blob
			if paper.SupplementaryStorageID != nil {
				stale = append(stale, *paper.SupplementaryStorageID)
			}
		}
	}

	updated, err := s.papers.Update(ctx, id, patch)
	if err != nil {
		s.discardUploads(ctx, patch)
		if errors.Is(err, model.ErrNotFound) {
			return model.Paper{}, apierrors.NewErrPaperNotFound(id.String())
		}
		s.logger.Error("Paper service: failed to update paper",
			"paper_id", id,
			"error", err.Error())
		return model.Paper{}, fmt.Errorf("failed to update paper: %w", err)
	}

	for _, storageID := range stale {
		s.deleteBlob(ctx, storageID)
	}

	s.notifier.Notify(ctx, paperUpdatedMessage(updated, actor, s.policy.AdminEmail()))

	s.logger.Info("Paper service: paper updated",
		"paper_id", id,
		"actor", actor.Email)

	return updated, nil
}

// Remove deletes a paper and then, best effort, its stored documents.
func (s *Paper) Remove(ctx context.Context, id uuid.UUID, actor model.Identity) error {
	paper, err := s.getPaper(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanMutate(actor, paper) {
		s.logger.Info("Paper service: delete forbidden",
			"paper_id", id,
			"actor", actor.Email)
		return apierrors.NewForbidden("You cannot delete this paper")
	}

	err = s.papers.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrPaperNotFound(id.String())
	}
	if err != nil {
		s.logger.Error("Paper service: failed to delete paper",
			"paper_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete paper: %w", err)
	}

	s.deleteBlobs(ctx, paper)

	s.logger.Info("Paper service: paper deleted",
		"paper_id", id,
		"actor", actor.Email)

	return nil
}

// SetStatus moves a paper to any of the review statuses and notifies its
// author. There is no enforced ordering between statuses.
func (s *Paper) SetStatus(ctx context.Context, id uuid.UUID, actor model.Identity, status string) (model.Paper, error) {
	newStatus, ok := model.ParsePaperStatus(status)
	if !ok {
		return model.Paper{}, apierrors.NewErrInvalidStatus(status)
	}

	if _, err := s.getPaper(ctx, id); err != nil {
		return model.Paper{}, err
	}
	if !s.policy.CanTransitionStatus(actor) {
		return model.Paper{}, apierrors.NewForbidden("Only admin can update the paper status")
	}

	updated, err := s.papers.Update(ctx, id, model.PaperPatch{Status: &newStatus})
	if errors.Is(err, model.ErrNotFound) {
		return model.Paper{}, apierrors.NewErrPaperNotFound(id.String())
	}
	if err != nil {
		s.logger.Error("Paper service: failed to update paper status",
			"paper_id", id,
			"status", newStatus,
			"error", err.Error())
		return model.Paper{}, fmt.Errorf("failed to update paper status: %w", err)
	}

	s.notifier.Notify(ctx, paperStatusMessage(updated, s.policy.AdminEmail()))

	s.logger.Info("Paper service: paper status changed",
		"paper_id", id,
		"status", newStatus)

	return updated, nil
}

// ListAll returns every paper. Admin only.
func (s *Paper) ListAll(ctx context.Context, actor model.Identity) ([]model.Paper, error) {
	if !actor.IsAdmin() {
		return nil, apierrors.NewErrAdminOnly()
	}
	return s.list(ctx, model.PaperFilter{})
}

// ListByAuthor returns the papers submitted under email.
func (s *Paper) ListByAuthor(ctx context.Context, actor model.Identity, email string) ([]model.Paper, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, apierrors.NewBadRequest("Email is required")
	}
	if !s.policy.CanListAuthor(actor, email) {
		return nil, apierrors.NewForbidden("You cannot view papers of another author")
	}
	return s.list(ctx, model.PaperFilter{Email: email})
}

func (s *Paper) list(ctx context.Context, filter model.PaperFilter) ([]model.Paper, error) {
	papers, err := s.papers.List(ctx, filter)
	if err != nil {
		s.logger.Error("Paper service: failed to list papers",
			"email", filter.Email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	return papers, nil
}

func (s *Paper) getPaper(ctx context.Context, id uuid.UUID) (model.Paper, error) {
	paper, err := s.papers.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Paper{}, apierrors.NewErrPaperNotFound(id.String())
	}
	if err != nil {
		s.logger.Error("Paper service: failed to get paper",
			"paper_id", id,
			"error", err.Error())
		return model.Paper{}, fmt.Errorf("failed to get paper: %w", err)
	}
	return paper, nil
}

func (s *Paper) reupload(ctx context.Context, id uuid.UUID, file model.Upload) (model.Blob, bool) {
	blob, err := s.blobs.Upload(ctx, file)
	if err != nil {
		s.logger.Warn("Paper service: failed to upload replacement document",
			"paper_id", id,
			"filename", file.Filename,
			"error", err.Error())
		return model.Blob{}, false
	}
	return blob, true
}

func (s *Paper) deleteBlobs(ctx context.Context, paper model.Paper) {
	s.deleteBlob(ctx, paper.PDFStorageID)
	if paper.SupplementaryStorageID != nil {
		s.deleteBlob(ctx, *paper.SupplementaryStorageID)
	}
}

// discardUploads removes documents uploaded for a patch that was never stored.
func (s *Paper) discardUploads(ctx context.Context, patch model.PaperPatch) {
	if patch.Primary != nil {
		s.deleteBlob(ctx, patch.Primary.StorageID)
	}
	if patch.Supplementary != nil {
		s.deleteBlob(ctx, patch.Supplementary.StorageID)
	}
}

func (s *Paper) deleteBlob(ctx context.Context, storageID string) {
	if storageID == "" {
		return
	}
	if err := s.blobs.Delete(ctx, storageID); err != nil {
		s.logger.Warn("Paper service: failed to delete document",
			"storage_id", storageID,
			"error", err.Error())
	}
}

func checkPDF(files ...*model.Upload) error {
	for _, f := range files {
		if f != nil && !strings.EqualFold(filepath.Ext(f.Filename), ".pdf") {
			return apierrors.NewBadRequest("Only PDF files are allowed", fmt.Sprintf("%s is not a PDF file", f.Filename))
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func trimmed(s *string) *string {
	if s == nil || blank(*s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
