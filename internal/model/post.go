package model

import (
	"context"
	"time"
)

// Content length bounds applied after trimming surrounding whitespace.
const (
	PostContentMinLen = 1
	PostContentMaxLen = 280
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, params CreatePostParams) (Post, error)
	GetByID(ctx context.Context, id int) (Post, error)
	GetByOwner(ctx context.Context, ownerID int) ([]Post, error)
	GetByConditions(ctx context.Context, conditions PostConditions) ([]Post, error)
	GetAll(ctx context.Context) ([]Post, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
	Update(ctx context.Context, id int, patch PostPatch) (Post, error)
	Delete(ctx context.Context, id int) error
}

// Post represents a stored post entity.
type Post struct {
	ID        int        `json:"id"`
	OwnerID   int        `json:"ownerId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	OwnerID int
	Content string
}

// PostPatch carries the fields a caller may change on a post.
type PostPatch struct {
	Content *string
}

// PostConditions narrows a post listing. Each supplied condition is
// combined by logical AND; Search matches content case-insensitively,
// Since and Until bound CreatedAt inclusively.
type PostConditions struct {
	OwnerID *int
	Search  string
	Since   *time.Time
	Until   *time.Time
}
