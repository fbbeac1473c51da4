package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/bookclub/internal/api/middleware"
	"github.com/edvin/bookclub/internal/api/request"
	"github.com/edvin/bookclub/internal/api/response"
	"github.com/edvin/bookclub/internal/core"
	"github.com/edvin/bookclub/internal/model"
	"github.com/edvin/bookclub/internal/platform"
)

type Book struct {
	svc *core.BookService
}

func NewBook(svc *core.BookService) *Book {
	return &Book{svc: svc}
}

func (h *Book) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParsePagination(r)

	books, hasMore, err := h.svc.List(r.Context(), params.Limit, params.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(books) > 0 {
		nextCursor = books[len(books)-1].ID
	}

	response.WritePaginated(w, http.StatusOK, books, nextCursor, hasMore)
}

func (h *Book) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBook
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	book := &model.Book{
		ID:        platform.NewID(),
		Title:     req.Title,
		Author:    req.Author,
		CreatedAt: time.Now(),
	}

	if err := h.svc.Create(r.Context(), book); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, book)
}

func (h *Book) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, book)
}

func (h *Book) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	books, err := h.svc.Search(r.Context(), q.Get("title"), q.Get("author"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, books)
}

// MarkRead records the authenticated user as having finished a book.
func (h *Book) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req request.MarkBookRead
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.svc.GetByID(r.Context(), req.BookID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.svc.MarkRead(r.Context(), userID, req.BookID); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRead returns the books the authenticated user has finished.
func (h *Book) ListRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	books, err := h.svc.ListRead(r.Context(), userID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, books)
}
