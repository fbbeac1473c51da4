package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchByTitle_FirstMatchWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "the dispossessed", r.URL.Query().Get("q"))
		assert.Equal(t, "title,author_name,key", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[
			{"title":"The Dispossessed","author_name":["Ursula K. Le Guin"],"key":"/works/OL45304W"},
			{"title":"The Dispossessed: An Ambiguous Utopia","author_name":["Someone Else"],"key":"/works/OL99999W"}
		]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	result, err := c.SearchByTitle(context.Background(), "the dispossessed")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "The Dispossessed", result.Title)
	require.NotNil(t, result.Author)
	assert.Equal(t, "Ursula K. Le Guin", *result.Author)
	assert.Equal(t, "/works/OL45304W", result.Key)
}

func TestClient_SearchByTitle_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	result, err := c.SearchByTitle(context.Background(), "no such book")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClient_SearchByTitle_MissingAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[{"title":"Anonymous Pamphlet","key":"/works/OL1W"}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	result, err := c.SearchByTitle(context.Background(), "anonymous pamphlet")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.Author)
}

func TestClient_SearchByTitle_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	result, err := c.SearchByTitle(context.Background(), "anything")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "unexpected status")
}
