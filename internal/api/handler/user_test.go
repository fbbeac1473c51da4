package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newUserHandler() *User {
	return NewUser(nil)
}

func TestUserUpdate_InvalidEmail(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPut, "/users/test-user-1", map[string]any{
		"email":      "not-an-email",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}), "id", "test-user-1")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestUserGet_MissingID(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodGet, "/users/", nil), "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserDelete_MissingID(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/users/", nil), "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
