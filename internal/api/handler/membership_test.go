package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newMembershipHandler() *Membership {
	return NewMembership(nil)
}

func TestMembershipCreate_InvalidJSON(t *testing.T) {
	h := newMembershipHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/memberships", "{bad json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMembershipCreate_MissingFields(t *testing.T) {
	h := newMembershipHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/memberships", map[string]any{"user_id": "test-user-1"})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestMembershipCreate_PermissionLevelOutOfRange(t *testing.T) {
	h := newMembershipHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/memberships", map[string]any{
		"user_id":          "test-user-1",
		"club_id":          "test-club-1",
		"permission_level": 5,
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMembershipDelete_MissingID(t *testing.T) {
	h := newMembershipHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/memberships/", nil), "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
