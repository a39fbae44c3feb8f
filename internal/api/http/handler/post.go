package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/query"
	"github.com/dtroode/micropost-server/internal/service"
)

// Post handles post endpoints.
type Post struct {
	postService *service.Post
	logger      *logger.Logger
}

func NewPost(postService *service.Post, logger *logger.Logger) *Post {
	return &Post{
		postService: postService,
		logger:      logger,
	}
}

type createPostRequest struct {
	OwnerID int    `json:"ownerId"`
	Content string `json:"content"`
}

type updatePostRequest struct {
	Content *string `json:"content"`
}

func (h *Post) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	conditions := model.PostConditions{Search: q.Get("search")}
	if raw := q.Get("ownerId"); raw != "" {
		owner, err := strconv.Atoi(raw)
		if err != nil || owner < 1 {
			writeBadRequest(w, "ownerId must be a positive integer")
			return
		}
		conditions.OwnerID = &owner
	}

	var ok bool
	if conditions.Since, ok = queryTime(r, "since"); !ok {
		writeBadRequest(w, "since must be an RFC 3339 timestamp")
		return
	}
	if conditions.Until, ok = queryTime(r, "until"); !ok {
		writeBadRequest(w, "until must be an RFC 3339 timestamp")
		return
	}

	page, err := h.postService.List(r.Context(), service.PostListParams{
		Options: query.ListOptions{
			Page:  queryInt(r, "page", 1),
			Limit: queryInt(r, "limit", query.DefaultLimit),
			Dir:   q.Get("order"),
		},
		Conditions: conditions,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Post) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}
	if req.OwnerID < 1 {
		writeBadRequest(w, "ownerId must be a positive integer")
		return
	}

	post, err := h.postService.Create(r.Context(), model.CreatePostParams{
		OwnerID: req.OwnerID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *Post) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, model.PostPatch{Content: req.Content})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *Post) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryTime parses an optional RFC 3339 query parameter. The second
// result is false only when the parameter is present but malformed.
func queryTime(r *http.Request, key string) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
