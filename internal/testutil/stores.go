package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/model"
)

// Accounts is an in-memory AccountStore and RefreshTokenStore.
type Accounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Account
}

var (
	_ model.AccountStore      = (*Accounts)(nil)
	_ model.RefreshTokenStore = (*Accounts)(nil)
)

func NewAccounts() *Accounts {
	return &Accounts{byID: make(map[uuid.UUID]model.Account)}
}

func (s *Accounts) Create(_ context.Context, account model.Account) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byID {
		if a.Email == account.Email {
			return model.Account{}, model.ErrAlreadyExists
		}
	}
	s.byID[account.ID] = account
	return account, nil
}

func (s *Accounts) GetByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (s *Accounts) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return a, nil
}

func (s *Accounts) Set(_ context.Context, id uuid.UUID, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	a.RefreshTokenHash = hash
	s.byID[id] = a
	return nil
}

func (s *Accounts) Replace(_ context.Context, id uuid.UUID, oldHash, newHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok || a.RefreshTokenHash == nil || !bytes.Equal(a.RefreshTokenHash, oldHash) {
		return model.ErrTokenMismatch
	}
	a.RefreshTokenHash = newHash
	s.byID[id] = a
	return nil
}

func (s *Accounts) Clear(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.byID[id]; ok {
		a.RefreshTokenHash = nil
		s.byID[id] = a
	}
	return nil
}

// Delete removes an account, simulating deletion after token issuance.
func (s *Accounts) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

// PendingAccounts is an in-memory PendingAccountStore.
type PendingAccounts struct {
	mu      sync.Mutex
	byEmail map[string]model.PendingAccount
}

var _ model.PendingAccountStore = (*PendingAccounts)(nil)

func NewPendingAccounts() *PendingAccounts {
	return &PendingAccounts{byEmail: make(map[string]model.PendingAccount)}
}

func (s *PendingAccounts) Replace(_ context.Context, p model.PendingAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[p.Email] = p
	return nil
}

func (s *PendingAccounts) GetByEmailAndRole(_ context.Context, email string, role model.Role) (model.PendingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byEmail[email]
	if !ok || p.Role != role {
		return model.PendingAccount{}, model.ErrNotFound
	}
	return p, nil
}

func (s *PendingAccounts) UpdateCode(_ context.Context, email, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byEmail[email]
	if !ok {
		return model.ErrNotFound
	}
	p.OTP = code
	p.OTPExpiresAt = expiresAt
	s.byEmail[email] = p
	return nil
}

func (s *PendingAccounts) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byEmail, email)
	return nil
}

// Len returns the number of pending records.
func (s *PendingAccounts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byEmail)
}

// Papers is an in-memory PaperStore.
type Papers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Paper
	now  func() time.Time
}

var _ model.PaperStore = (*Papers)(nil)

func NewPapers() *Papers {
	return &Papers{byID: make(map[uuid.UUID]model.Paper), now: time.Now}
}

func (s *Papers) Create(_ context.Context, p model.Paper) (model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
	return p, nil
}

func (s *Papers) GetByID(_ context.Context, id uuid.UUID) (model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return model.Paper{}, model.ErrNotFound
	}
	return p, nil
}

func (s *Papers) Update(_ context.Context, id uuid.UUID, patch model.PaperPatch) (model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return model.Paper{}, model.ErrNotFound
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Abstract != nil {
		p.Abstract = *patch.Abstract
	}
	if patch.Keywords != nil {
		p.Keywords = slices.Clone(patch.Keywords)
	}
	if patch.Primary != nil {
		p.SetPrimary(*patch.Primary)
	}
	if patch.Supplementary != nil {
		p.SetSupplementary(*patch.Supplementary)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = s.now()
	s.byID[id] = p
	return p, nil
}

func (s *Papers) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Papers) List(_ context.Context, filter model.PaperFilter) ([]model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	papers := make([]model.Paper, 0, len(s.byID))
	for _, p := range s.byID {
		if filter.Email == "" || p.Email == filter.Email {
			papers = append(papers, p)
		}
	}
	slices.SortFunc(papers, func(a, b model.Paper) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return papers, nil
}

// Blobs is an in-memory BlobStore. Uploads of files listed in FailUploads fail.
type Blobs struct {
	mu          sync.Mutex
	objects     map[string][]byte
	FailUploads map[string]bool
	seq         int
}

var _ model.BlobStore = (*Blobs)(nil)

func NewBlobs() *Blobs {
	return &Blobs{objects: make(map[string][]byte), FailUploads: make(map[string]bool)}
}

func (s *Blobs) Upload(_ context.Context, file model.Upload) (model.Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUploads[file.Filename] {
		return model.Blob{}, fmt.Errorf("upload of %s failed", file.Filename)
	}
	var data []byte
	if file.Content != nil {
		var err error
		if data, err = io.ReadAll(file.Content); err != nil {
			return model.Blob{}, err
		}
	}
	s.seq++
	id := fmt.Sprintf("papers/%d-%s", s.seq, file.Filename)
	s.objects[id] = data
	return model.Blob{
		ViewerURL:   "https://blobs.test/" + id,
		DownloadURL: "https://blobs.test/" + id + "?download=1",
		StorageID:   id,
	}, nil
}

func (s *Blobs) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
	return nil
}

// Has reports whether the object is still stored.
func (s *Blobs) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[id]
	return ok
}

// Notifications records every message passed to Notify.
type Notifications struct {
	mu       sync.Mutex
	messages []model.Message
}

var _ model.Notifier = (*Notifications)(nil)

func (n *Notifications) Notify(_ context.Context, msg model.Message) {
	n.mu.Lock()
	n.messages = append(n.messages, msg)
	n.mu.Unlock()
}

// Messages returns a copy of the recorded messages.
func (n *Notifications) Messages() []model.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.messages)
}

// Last returns the most recent message.
func (n *Notifications) Last() model.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return model.Message{}
	}
	return n.messages[len(n.messages)-1]
}
