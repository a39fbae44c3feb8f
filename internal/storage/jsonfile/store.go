package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dtroode/micropost-server/internal/model"
)

var _ model.DocumentStore = (*Store)(nil)

// storedAccount is the on-disk account shape. It has no post count:
// the count is derived from the post collection on every read, so
// writing it would only let the file drift from the truth.
type storedAccount struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Roles     []string  `json:"roles"`
}

type storedDocument struct {
	Accounts      []storedAccount `json:"accounts"`
	Posts         []model.Post    `json:"posts"`
	LastAccountID int             `json:"lastAccountId,omitempty"`
	LastPostID    int             `json:"lastPostId,omitempty"`
}

func toStored(doc *model.Document) *storedDocument {
	stored := &storedDocument{
		Accounts:      make([]storedAccount, len(doc.Accounts)),
		Posts:         doc.Posts,
		LastAccountID: doc.LastAccountID,
		LastPostID:    doc.LastPostID,
	}
	for i, a := range doc.Accounts {
		stored.Accounts[i] = storedAccount{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
			Roles:     a.Roles,
		}
	}
	return stored
}

func fromStored(stored *storedDocument) *model.Document {
	doc := &model.Document{
		Accounts:      make([]model.Account, len(stored.Accounts)),
		Posts:         stored.Posts,
		LastAccountID: stored.LastAccountID,
		LastPostID:    stored.LastPostID,
	}
	for i, a := range stored.Accounts {
		doc.Accounts[i] = model.Account{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
			Roles:     a.Roles,
		}
	}
	return doc
}

// Store is the storage handle: the sole owner of the durable JSON
// document and the lock serializing access to it. Every mutation runs
// as a single load -> mutate -> persist cycle under the write lock, so
// two concurrent writers can never interleave and lose an update.
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore creates a Store backed by the file at path and loads it
// once. A missing file is initialized with both collections empty and
// persisted immediately. Malformed content is returned as a
// StorageError: the caller must treat it as fatal and refuse to serve.
func NewStore(ctx context.Context, path string) (*Store, error) {
	s := &Store{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, model.NewStorageError("init", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := s.persist(&model.Document{
			Accounts: []model.Account{},
			Posts:    []model.Post{},
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// View runs fn with a consistent snapshot of the document. Mutations
// made by fn are discarded. Readers may overlap with each other but
// serialize against in-flight writers.
func (s *Store) View(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	return fn(doc)
}

// Update runs fn inside the write critical section: the freshest
// document is loaded, fn mutates it, and the result is persisted
// atomically before Update returns. If fn returns an error nothing is
// persisted.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.persist(doc)
}

// load reads and decodes the backing file. Callers must hold the lock.
func (s *Store) load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return nil, model.NewStorageError("read", s.path, err)
	}

	var stored storedDocument
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, model.NewStorageError("decode", s.path, err)
	}

	doc := fromStored(&stored)
	if doc.Accounts == nil {
		doc.Accounts = []model.Account{}
	}
	if doc.Posts == nil {
		doc.Posts = []model.Post{}
	}

	return doc, nil
}

// persist writes the whole document to a temp file in the same
// directory and renames it over the backing file, so a partial write
// is never observable by a subsequent load. Callers must hold the
// write lock.
func (s *Store) persist(doc *model.Document) error {
	data, err := json.MarshalIndent(toStored(doc), "", "  ")
	if err != nil {
		return model.NewStorageError("encode", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return model.NewStorageError("write", s.path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return model.NewStorageError("write", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return model.NewStorageError("write", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return model.NewStorageError("write", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return model.NewStorageError("write", s.path, err)
	}

	return nil
}
