package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/query"
)

// Post orchestrates post operations between the adapter and the
// repository.
type Post struct {
	postStore model.PostStore
	logger    *logger.Logger
}

func NewPost(postStore model.PostStore, logger *logger.Logger) *Post {
	return &Post{
		postStore: postStore,
		logger:    logger,
	}
}

// PostListParams narrows and pages a post listing.
type PostListParams struct {
	Options    query.ListOptions
	Conditions model.PostConditions
}

// List filters posts in the repository and runs them through the
// sort/paginate pipeline. Posts sort by createdAt only; a name sort
// request falls back to the default.
func (s *Post) List(ctx context.Context, params PostListParams) (query.Page[model.Post], error) {
	matched, err := s.postStore.GetByConditions(ctx, params.Conditions)
	if err != nil {
		s.logger.Error("Post service: failed to list posts", "error", err.Error())
		return query.Page[model.Post]{}, fmt.Errorf("failed to list posts: %w", err)
	}

	opts := params.Options
	opts.Sort = query.SortByCreatedAt

	page := query.List(matched, opts,
		func(p model.Post) string { return "" },
		func(p model.Post) time.Time { return p.CreatedAt },
	)
	return page, nil
}

func (s *Post) Get(ctx context.Context, id int) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

func (s *Post) GetByOwner(ctx context.Context, ownerID int) ([]model.Post, error) {
	posts, err := s.postStore.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by owner: %w", err)
	}
	return posts, nil
}

func (s *Post) Create(ctx context.Context, params model.CreatePostParams) (model.Post, error) {
	post, err := s.postStore.Create(ctx, params)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created", "id", post.ID, "owner", post.OwnerID)
	return post, nil
}

func (s *Post) Update(ctx context.Context, id int, patch model.PostPatch) (model.Post, error) {
	post, err := s.postStore.Update(ctx, id, patch)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *Post) Delete(ctx context.Context, id int) error {
	if err := s.postStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
