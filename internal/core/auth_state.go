package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edvin/bookclub/internal/model"
	"github.com/edvin/bookclub/internal/platform"
)

// AuthStateService manages the short-lived rows that bind an outbound
// authorization request to its callback. Consumption is a single atomic
// delete-returning statement, so a state value can never be redeemed twice.
type AuthStateService struct {
	db        DB
	ttl       time.Duration
	allowList []string
}

func NewAuthStateService(db DB, ttl time.Duration, allowList []string) *AuthStateService {
	return &AuthStateService{db: db, ttl: ttl, allowList: allowList}
}

// Begin validates the return URL, mints a CSRF state and a nonce, and
// persists the pending state row.
func (s *AuthStateService) Begin(ctx context.Context, returnURL string) (*model.AuthState, error) {
	if !s.returnURLAllowed(returnURL) {
		return nil, fmt.Errorf("return_url %q not in allow list", returnURL)
	}

	csrfState, err := newToken()
	if err != nil {
		return nil, err
	}
	nonce, err := newToken()
	if err != nil {
		return nil, err
	}

	state := &model.AuthState{
		ID:        platform.NewID(),
		CSRFState: csrfState,
		Nonce:     nonce,
		ReturnURL: returnURL,
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO oauth_states (id, csrf_state, nonce, return_url, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		state.ID, state.CSRFState, state.Nonce, state.ReturnURL, state.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create auth state: %w", err)
	}
	return state, nil
}

// Consume atomically looks up and deletes the row for the given CSRF state.
// Unknown, already-consumed and expired states all return ErrStateNotFound;
// callers must not be able to tell which case they hit.
func (s *AuthStateService) Consume(ctx context.Context, csrfState string) (*model.AuthState, error) {
	var state model.AuthState
	err := s.db.QueryRow(ctx,
		`DELETE FROM oauth_states WHERE csrf_state = $1
		 RETURNING id, csrf_state, nonce, return_url, created_at`,
		csrfState,
	).Scan(&state.ID, &state.CSRFState, &state.Nonce, &state.ReturnURL, &state.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("consume auth state: %w", err)
	}

	if time.Since(state.CreatedAt) > s.ttl {
		return nil, ErrStateNotFound
	}
	return &state, nil
}

// PurgeExpired removes pending states older than the expiry window. Expired
// rows are already rejected by Consume; this is storage hygiene only.
func (s *AuthStateService) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM oauth_states WHERE created_at < $1`, time.Now().Add(-s.ttl),
	)
	if err != nil {
		return 0, fmt.Errorf("purge auth states: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *AuthStateService) returnURLAllowed(returnURL string) bool {
	for _, prefix := range s.allowList {
		if strings.HasPrefix(returnURL, prefix) {
			return true
		}
	}
	return false
}
