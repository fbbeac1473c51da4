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

type Meeting struct {
	svc        *core.MeetingService
	attendance *core.AttendanceService
}

func NewMeeting(svc *core.MeetingService, attendance *core.AttendanceService) *Meeting {
	return &Meeting{svc: svc, attendance: attendance}
}

func (h *Meeting) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMeeting
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	m := &model.Meeting{
		ID:          platform.NewID(),
		ClubID:      req.ClubID,
		BookID:      req.BookID,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.svc.Create(r.Context(), m); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, m)
}

func (h *Meeting) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	meeting, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, meeting)
}

func (h *Meeting) ListByClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := request.RequireID(chi.URLParam(r, "clubID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	meetings, err := h.svc.ListByClub(r.Context(), clubID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, meetings)
}

func (h *Meeting) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateMeeting
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	meeting, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	meeting.BookID = req.BookID
	meeting.Location = req.Location
	meeting.ScheduledAt = req.ScheduledAt

	if err := h.svc.Update(r.Context(), meeting); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, meeting)
}

func (h *Meeting) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddAttendance registers a user for a meeting.
func (h *Meeting) AddAttendance(w http.ResponseWriter, r *http.Request) {
	meetingID, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateAttendance
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.svc.GetByID(r.Context(), meetingID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	a := &model.Attendance{
		ID:        platform.NewID(),
		MeetingID: meetingID,
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}

	if err := h.attendance.Create(r.Context(), a); err != nil {
		response.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, a)
}

// ListAttendance returns who is registered for a meeting.
func (h *Meeting) ListAttendance(w http.ResponseWriter, r *http.Request) {
	meetingID, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.attendance.ListByMeeting(r.Context(), meetingID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, records)
}

// RemoveAttendance deletes an attendance record.
func (h *Meeting) RemoveAttendance(w http.ResponseWriter, r *http.Request) {
	attendanceID, err := request.RequireID(chi.URLParam(r, "attendanceID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.attendance.Delete(r.Context(), attendanceID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
