package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/paperdesk/internal/model"
)

var _ model.PaperStore = (*PaperRepository)(nil)

type PaperRepository struct {
	db *Connection
}

func NewPaperRepository(db *Connection) *PaperRepository {
	return &PaperRepository{
		db: db,
	}
}

const paperColumns = `id, full_name, email, title, abstract, keywords,
	pdf_viewer_url, pdf_download_url, pdf_storage_id,
	supplementary_viewer_url, supplementary_download_url, supplementary_storage_id,
	status, created_at, updated_at`

func scanPaper(row pgx.Row) (model.Paper, error) {
	var p model.Paper
	err := row.Scan(
		&p.ID, &p.FullName, &p.Email, &p.Title, &p.Abstract, &p.Keywords,
		&p.PDFViewerURL, &p.PDFDownloadURL, &p.PDFStorageID,
		&p.SupplementaryViewerURL, &p.SupplementaryDownloadURL, &p.SupplementaryStorageID,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p, err
}

func (r *PaperRepository) Create(ctx context.Context, paper model.Paper) (model.Paper, error) {
	query := `
		INSERT INTO papers (id, full_name, email, title, abstract, keywords,
			pdf_viewer_url, pdf_download_url, pdf_storage_id,
			supplementary_viewer_url, supplementary_download_url, supplementary_storage_id,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + paperColumns

	saved, err := scanPaper(r.db.QueryRow(ctx, query,
		paper.ID, paper.FullName, paper.Email, paper.Title, paper.Abstract, paper.Keywords,
		paper.PDFViewerURL, paper.PDFDownloadURL, paper.PDFStorageID,
		paper.SupplementaryViewerURL, paper.SupplementaryDownloadURL, paper.SupplementaryStorageID,
		paper.Status, paper.CreatedAt, paper.UpdatedAt,
	))
	if err != nil {
		return model.Paper{}, fmt.Errorf("failed to create paper: %w", err)
	}

	return saved, nil
}

func (r *PaperRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers WHERE id = $1`

	paper, err := scanPaper(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Paper{}, model.ErrNotFound
		}
		return model.Paper{}, fmt.Errorf("failed to get paper by id: %w", err)
	}

	return paper, nil
}

func (r *PaperRepository) Update(ctx context.Context, id uuid.UUID, patch model.PaperPatch) (model.Paper, error) {
	query, args := buildPaperUpdate(id, patch)

	paper, err := scanPaper(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Paper{}, model.ErrNotFound
		}
		return model.Paper{}, fmt.Errorf("failed to update paper: %w", err)
	}

	return paper, nil
}

func (r *PaperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM papers WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete paper: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PaperRepository) List(ctx context.Context, filter model.PaperFilter) ([]model.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers`
	var args []any
	if filter.Email != "" {
		query += ` WHERE email = $1`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	defer rows.Close()

	papers := []model.Paper{}
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		papers = append(papers, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}

	return papers, nil
}

// buildPaperUpdate renders a partial UPDATE touching only the patched columns.
// updated_at is always bumped.
func buildPaperUpdate(id uuid.UUID, patch model.PaperPatch) (string, []any) {
	args := []any{id}
	sets := []string{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Abstract != nil {
		set("abstract", *patch.Abstract)
	}
	if patch.Keywords != nil {
		set("keywords", patch.Keywords)
	}
	if patch.Primary != nil {
		set("pdf_viewer_url", patch.Primary.ViewerURL)
		set("pdf_download_url", patch.Primary.DownloadURL)
		set("pdf_storage_id", patch.Primary.StorageID)
	}
	if patch.Supplementary != nil {
		set("supplementary_viewer_url", patch.Supplementary.ViewerURL)
		set("supplementary_download_url", patch.Supplementary.DownloadURL)
		set("supplementary_storage_id", patch.Supplementary.StorageID)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE papers SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + paperColumns
	return query, args
}
