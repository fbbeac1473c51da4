package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/bookclub/internal/api/request"
	"github.com/edvin/bookclub/internal/api/response"
	"github.com/edvin/bookclub/internal/core"
	"github.com/edvin/bookclub/internal/model"
	"github.com/edvin/bookclub/internal/platform"
)

type Club struct {
	svc *core.ClubService
}

func NewClub(svc *core.ClubService) *Club {
	return &Club{svc: svc}
}

func (h *Club) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParsePagination(r)

	clubs, hasMore, err := h.svc.List(r.Context(), params.Limit, params.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(clubs) > 0 {
		nextCursor = clubs[len(clubs)-1].ID
	}

	response.WritePaginated(w, http.StatusOK, clubs, nextCursor, hasMore)
}

func (h *Club) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClub
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	club := &model.Club{
		ID:          platform.NewID(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.svc.Create(r.Context(), club); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, club)
}

func (h *Club) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	club, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, club)
}

func (h *Club) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateClub
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	club, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	club.Name = req.Name
	club.Description = req.Description

	if err := h.svc.Update(r.Context(), club); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, club)
}

func (h *Club) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
