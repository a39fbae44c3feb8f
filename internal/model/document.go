package model

import "context"

// Document is the complete durable state: both collections plus the
// per-collection id high-water marks. The marks make id allocation
// survive deletion of the highest record, so an id is never reused.
type Document struct {
	Accounts      []Account `json:"accounts"`
	Posts         []Post    `json:"posts"`
	LastAccountID int       `json:"lastAccountId,omitempty"`
	LastPostID    int       `json:"lastPostId,omitempty"`
}

// DocumentStore is the storage handle owning the durable document.
// Update runs fn inside the single write critical section: the freshest
// document is loaded, fn mutates it, and the result is persisted
// atomically before Update returns. View runs fn with a consistent
// read snapshot and may overlap with other readers but not writers.
type DocumentStore interface {
	View(ctx context.Context, fn func(doc *Document) error) error
	Update(ctx context.Context, fn func(doc *Document) error) error
}
