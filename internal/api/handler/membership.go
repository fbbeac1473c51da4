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

type Membership struct {
	svc *core.MembershipService
}

func NewMembership(svc *core.MembershipService) *Membership {
	return &Membership{svc: svc}
}

func (h *Membership) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMembership
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	m := &model.Membership{
		ID:              platform.NewID(),
		UserID:          req.UserID,
		ClubID:          req.ClubID,
		PermissionLevel: req.PermissionLevel,
		CreatedAt:       time.Now(),
	}

	if err := h.svc.Create(r.Context(), m); err != nil {
		response.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, m)
}

func (h *Membership) ListByClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := request.RequireID(chi.URLParam(r, "clubID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	memberships, err := h.svc.ListByClub(r.Context(), clubID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, memberships)
}

func (h *Membership) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := request.RequireID(chi.URLParam(r, "userID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	memberships, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, memberships)
}

func (h *Membership) Delete(w http.ResponseWriter, r *http.Request) {
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
