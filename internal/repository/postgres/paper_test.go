package postgres

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/paperdesk/internal/model"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewAccountRepository(db).db)
	assert.Equal(t, db, NewPendingAccountRepository(db).db)
	assert.Equal(t, db, NewPaperRepository(db).db)
}

func TestBuildPaperUpdate(t *testing.T) {
	id := uuid.New()
	abstract := "Revised."
	status := model.PaperStatusSubmitted

	tests := []struct {
		name     string
		patch    model.PaperPatch
		wantSets []string
		wantArgs []any
	}{
		{
			name:     "status only",
			patch:    model.PaperPatch{Status: &status},
			wantSets: []string{"status = $2", "updated_at = NOW()"},
			wantArgs: []any{id, "Submitted"},
		},
		{
			name:     "abstract and keywords",
			patch:    model.PaperPatch{Abstract: &abstract, Keywords: []string{"a", "b"}},
			wantSets: []string{"abstract = $2", "keywords = $3", "updated_at = NOW()"},
			wantArgs: []any{id, "Revised.", []string{"a", "b"}},
		},
		{
			name:  "primary document",
			patch: model.PaperPatch{Primary: &model.Blob{ViewerURL: "v", DownloadURL: "d", StorageID: "s"}},
			wantSets: []string{
				"pdf_viewer_url = $2", "pdf_download_url = $3", "pdf_storage_id = $4", "updated_at = NOW()",
			},
			wantArgs: []any{id, "v", "d", "s"},
		},
		{
			name:     "empty patch still bumps updated_at",
			patch:    model.PaperPatch{},
			wantSets: []string{"updated_at = NOW()"},
			wantArgs: []any{id},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildPaperUpdate(id, tt.patch)

			assert.True(t, strings.HasPrefix(query, "UPDATE papers SET "+strings.Join(tt.wantSets, ", ")+" WHERE id = $1"), query)
			assert.Contains(t, query, "RETURNING id, full_name")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
