package handler

import (
	"net/http"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/query"
	"github.com/dtroode/micropost-server/internal/service"
)

// Account handles account endpoints. Request-shape checks happen
// here; business invariants are enforced below in the repository.
type Account struct {
	accountService *service.Account
	postService    *service.Post
	logger         *logger.Logger
}

func NewAccount(accountService *service.Account, postService *service.Post, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		postService:    postService,
		logger:         logger,
	}
}

type createAccountRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type updateAccountRequest struct {
	Name  *string   `json:"name"`
	Email *string   `json:"email"`
	Roles *[]string `json:"roles"`
}

func (h *Account) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.accountService.List(r.Context(), service.AccountListParams{
		Options: query.ListOptions{
			Page:  queryInt(r, "page", 1),
			Limit: queryInt(r, "limit", query.DefaultLimit),
			Sort:  q.Get("sort"),
			Dir:   q.Get("order"),
		},
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Account) Recent(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.Recent(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

func (h *Account) ByRole(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	if role == "" {
		writeBadRequest(w, "role is required")
		return
	}

	accounts, err := h.accountService.GetByRole(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}
	if accounts == nil {
		accounts = []model.Account{}
	}

	writeJSON(w, http.StatusOK, accounts)
}

func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	account, err := h.accountService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *Account) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	account, err := h.accountService.Create(r.Context(), model.CreateAccountParams{
		Name:  req.Name,
		Email: req.Email,
		Roles: req.Roles,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

func (h *Account) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	account, err := h.accountService.Update(r.Context(), id, model.AccountPatch{
		Name:  req.Name,
		Email: req.Email,
		Roles: req.Roles,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *Account) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Posts lists the posts owned by an account.
func (h *Account) Posts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	// Confirm the owner exists so a miss is a 404, not an empty list.
	if _, err := h.accountService.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.postService.GetByOwner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// Stats reports document totals for diagnostics.
func (h *Account) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.accountService.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
