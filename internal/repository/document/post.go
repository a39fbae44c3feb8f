package document

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtroode/micropost-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

// PostRepository persists posts in the shared document store. Content
// is trimmed and length-checked with the creation rules on both create
// and update, and a post can never be created for an absent owner.
type PostRepository struct {
	store model.DocumentStore
}

func NewPostRepository(store model.DocumentStore) *PostRepository {
	return &PostRepository{
		store: store,
	}
}

var posts = collection[model.Post]{id: func(p model.Post) int { return p.ID }}

func (r *PostRepository) Create(ctx context.Context, params model.CreatePostParams) (model.Post, error) {
	content, err := validateContent(params.Content)
	if err != nil {
		return model.Post{}, err
	}

	var created model.Post
	err = r.store.Update(ctx, func(doc *model.Document) error {
		if _, ok := accounts.findByID(doc.Accounts, params.OwnerID); !ok {
			return fmt.Errorf("owner %d: %w", params.OwnerID, model.ErrNotFound)
		}

		id := posts.nextID(doc.Posts, doc.LastPostID)
		created = model.Post{
			ID:        id,
			OwnerID:   params.OwnerID,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		doc.Posts = append(doc.Posts, created)
		doc.LastPostID = id
		return nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return created, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (model.Post, error) {
	var post model.Post
	err := r.store.View(ctx, func(doc *model.Document) error {
		found, ok := posts.findByID(doc.Posts, id)
		if !ok {
			return model.ErrNotFound
		}
		post = found
		return nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (r *PostRepository) GetByOwner(ctx context.Context, ownerID int) ([]model.Post, error) {
	return r.GetByConditions(ctx, model.PostConditions{OwnerID: &ownerID})
}

// GetByConditions returns posts matching every supplied condition.
// Search is a case-insensitive substring match against content; Since
// and Until bound CreatedAt inclusively.
func (r *PostRepository) GetByConditions(ctx context.Context, conditions model.PostConditions) ([]model.Post, error) {
	search := strings.ToLower(conditions.Search)

	var result []model.Post
	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, p := range doc.Posts {
			if conditions.OwnerID != nil && p.OwnerID != *conditions.OwnerID {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Content), search) {
				continue
			}
			if conditions.Since != nil && p.CreatedAt.Before(*conditions.Since) {
				continue
			}
			if conditions.Until != nil && p.CreatedAt.After(*conditions.Until) {
				continue
			}
			result = append(result, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAll returns all posts in storage order.
func (r *PostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	var result []model.Post
	err := r.store.View(ctx, func(doc *model.Document) error {
		result = make([]model.Post, len(doc.Posts))
		copy(result, doc.Posts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	count := 0
	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, p := range doc.Posts {
			if p.OwnerID == ownerID {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Update merges patch into the post after validating it with the
// creation rules, and stamps UpdatedAt.
func (r *PostRepository) Update(ctx context.Context, id int, patch model.PostPatch) (model.Post, error) {
	var content string
	if patch.Content != nil {
		var err error
		content, err = validateContent(*patch.Content)
		if err != nil {
			return model.Post{}, err
		}
	}

	var updated model.Post
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := posts.indexByID(doc.Posts, id)
		if i < 0 {
			return model.ErrNotFound
		}

		post := doc.Posts[i]
		if patch.Content != nil {
			post.Content = content
		}
		now := time.Now().UTC()
		post.UpdatedAt = &now

		doc.Posts[i] = post
		updated = post
		return nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		remaining, removed := posts.removeByID(doc.Posts, id)
		if !removed {
			return model.ErrNotFound
		}
		doc.Posts = remaining
		return nil
	})
}

func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	n := utf8.RuneCountInString(trimmed)
	if n < model.PostContentMinLen {
		return "", model.NewValidationError("content", "must not be empty")
	}
	if n > model.PostContentMaxLen {
		return "", model.NewValidationError("content", fmt.Sprintf("must be at most %d characters", model.PostContentMaxLen))
	}
	return trimmed, nil
}
