package request

import (
	"net/http"
	"strconv"
)

// Pagination holds the parsed limit and cursor for a list endpoint. The
// cursor is the id of the last item from the previous page.
type Pagination struct {
	Limit  int
	Cursor string
}

const (
	// Club rosters and meeting schedules rarely run past a few dozen
	// rows, so pages default small.
	DefaultLimit = 25
	MaxLimit     = 100
)

// ParsePagination extracts limit and cursor from query parameters. A
// missing, non-numeric, or non-positive limit falls back to the default;
// an oversized one is clamped to MaxLimit.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{
		Limit:  DefaultLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			p.Limit = limit
		}
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}
