package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/model"
)

const maxJSONBody = 16 << 10

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apierrors.NewBadRequest("Invalid request body", err.Error())
}

func paperID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "paperId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierrors.NewErrPaperNotFound(raw)
	}
	return id, nil
}

// keywordList accepts keywords as a JSON array or as one delimited string.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*k = []string{text}
	return nil
}

// paperForm holds the fields of a submit or update request. Nil fields
// were absent from the request.
type paperForm struct {
	FullName      *string       `json:"fullname"`
	Email         *string       `json:"email"`
	Title         *string       `json:"paperTitle"`
	Abstract      *string       `json:"abstract"`
	Keywords      keywordList   `json:"keywords"`
	Primary       *model.Upload `json:"-"`
	Supplementary *model.Upload `json:"-"`

	files []multipart.File
}

// Close releases the uploaded files.
func (f *paperForm) Close() {
	for _, file := range f.files {
		_ = file.Close()
	}
}

// readPaperForm parses a multipart/form-data request, or a JSON body for
// requests that carry no documents.
func readPaperForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*paperForm, error) {
	form := &paperForm{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := decodeJSON(w, r, form); err != nil {
			return nil, err
		}
		return form, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, apierrors.NewBadRequest("Invalid form data", err.Error())
	}

	values := r.MultipartForm.Value
	form.FullName = formValue(values, "fullname")
	form.Email = formValue(values, "email")
	form.Title = formValue(values, "paperTitle")
	form.Abstract = formValue(values, "abstract")
	if kw, ok := values["keywords"]; ok {
		form.Keywords = kw
	} else if kw, ok := values["keywords[]"]; ok {
		form.Keywords = kw
	}

	var err error
	if form.Primary, err = form.open(r, "pdfFile"); err != nil {
		form.Close()
		return nil, err
	}
	if form.Supplementary, err = form.open(r, "supplementaryPdf"); err != nil {
		form.Close()
		return nil, err
	}
	return form, nil
}

func (f *paperForm) open(r *http.Request, field string) (*model.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apierrors.NewBadRequest("Invalid form data", err.Error())
	}
	f.files = append(f.files, file)

	return &model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, nil
}

func formValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := strings.TrimSpace(v[0])
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
