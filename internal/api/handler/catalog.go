package handler

import (
	"context"
	"net/http"

	"github.com/edvin/bookclub/internal/api/response"
	"github.com/edvin/bookclub/internal/openlibrary"
)

// CatalogSearcher looks up book metadata in an external catalog.
// *openlibrary.Client satisfies this interface.
type CatalogSearcher interface {
	SearchByTitle(ctx context.Context, title string) (*openlibrary.Result, error)
}

type Catalog struct {
	searcher CatalogSearcher
}

func NewCatalog(searcher CatalogSearcher) *Catalog {
	return &Catalog{searcher: searcher}
}

// Search proxies a title lookup to the external catalog.
func (h *Catalog) Search(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		response.WriteError(w, http.StatusBadRequest, "missing title parameter")
		return
	}

	result, err := h.searcher.SearchByTitle(r.Context(), title)
	if err != nil {
		response.WriteError(w, http.StatusBadGateway, "catalog lookup failed")
		return
	}
	if result == nil {
		response.WriteError(w, http.StatusNotFound, "no matching book found")
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}
