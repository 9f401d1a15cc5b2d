package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaperStatus is the review status of a paper. Any status may follow any
// other; the administrator sets it freely.
type PaperStatus string

const (
	PaperStatusSubmitted      PaperStatus = "Submitted"
	PaperStatusReviewAwaiting PaperStatus = "Review Awaiting"
	PaperStatusReviewObtained PaperStatus = "Review Obtained"
	PaperStatusAccept         PaperStatus = "Accept"
	PaperStatusReject         PaperStatus = "Reject"
)

// PaperStatuses lists every valid status.
var PaperStatuses = []PaperStatus{
	PaperStatusSubmitted,
	PaperStatusReviewAwaiting,
	PaperStatusReviewObtained,
	PaperStatusAccept,
	PaperStatusReject,
}

// ParsePaperStatus returns the status named exactly by s.
func ParsePaperStatus(s string) (PaperStatus, bool) {
	for _, st := range PaperStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// PaperStore defines persistence operations for papers.
type PaperStore interface {
	Create(ctx context.Context, paper Paper) (Paper, error)
	GetByID(ctx context.Context, id uuid.UUID) (Paper, error)
	Update(ctx context.Context, id uuid.UUID, patch PaperPatch) (Paper, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PaperFilter) ([]Paper, error)
}

// Paper is a submission under review.
type Paper struct {
	ID                       uuid.UUID   `json:"_id"`
	FullName                 string      `json:"fullname"`
	Email                    string      `json:"email"`
	Title                    string      `json:"paperTitle"`
	Abstract                 string      `json:"abstract"`
	Keywords                 []string    `json:"keywords"`
	PDFViewerURL             string      `json:"pdfFileViewerUrl"`
	PDFDownloadURL           string      `json:"pdfFileDownloadUrl"`
	PDFStorageID             string      `json:"pdfFilePublicId"`
	SupplementaryViewerURL   *string     `json:"supplementaryViewerUrl"`
	SupplementaryDownloadURL *string     `json:"supplementaryDownloadUrl"`
	SupplementaryStorageID   *string     `json:"supplementaryPublicId"`
	Status                   PaperStatus `json:"status"`
	CreatedAt                time.Time   `json:"createdAt"`
	UpdatedAt                time.Time   `json:"updatedAt"`
}

// SetPrimary points the primary document slot at blob.
func (p *Paper) SetPrimary(blob Blob) {
	p.PDFViewerURL = blob.ViewerURL
	p.PDFDownloadURL = blob.DownloadURL
	p.PDFStorageID = blob.StorageID
}

// SetSupplementary points the supplementary document slot at blob.
func (p *Paper) SetSupplementary(blob Blob) {
	p.SupplementaryViewerURL = &blob.ViewerURL
	p.SupplementaryDownloadURL = &blob.DownloadURL
	p.SupplementaryStorageID = &blob.StorageID
}

// PaperPatch is a partial update. Nil fields are left untouched.
type PaperPatch struct {
	FullName      *string
	Title         *string
	Abstract      *string
	Keywords      []string
	Primary       *Blob
	Supplementary *Blob
	Status        *PaperStatus
}

// PaperFilter narrows a paper listing. Zero value lists everything.
type PaperFilter struct {
	Email string
}

// SubmitPaperParams contains parameters to submit a paper.
type SubmitPaperParams struct {
	FullName      string
	Email         string
	Title         string
	Abstract      string
	Keywords      []string
	Primary       *Upload
	Supplementary *Upload
}

// UpdatePaperParams contains the fields an author may change.
// Nil fields and nil uploads are left untouched.
type UpdatePaperParams struct {
	FullName      *string
	Title         *string
	Abstract      *string
	Keywords      []string
	Primary       *Upload
	Supplementary *Upload
}

// ParseKeywords normalizes keywords supplied either as a list or as one
// comma-delimited string into an ordered list without blanks.
func ParseKeywords(values []string) []string {
	if len(values) == 1 {
		values = strings.Split(values[0], ",")
	}
	keywords := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			keywords = append(keywords, v)
		}
	}
	return keywords
}
