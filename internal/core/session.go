package core

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/edvin/bookclub/internal/model"
	"github.com/edvin/bookclub/internal/platform"
)

// SessionService issues and verifies split-token session credentials.
//
// A credential is two independent random values: p1 is a public lookup key
// backed by a unique index, p2 is the secret. Only an HMAC of p2 is stored,
// so a copy of the sessions table does not yield usable credentials, and the
// row lookup cost is independent of the secret's value. The stored and
// presented hashes are compared in constant time; a short-circuiting
// byte comparison here would leak the secret through response timing.
type SessionService struct {
	db      DB
	hashKey []byte
	ttl     time.Duration
}

func NewSessionService(db DB, hashKey string, ttl time.Duration) *SessionService {
	return &SessionService{db: db, hashKey: []byte(hashKey), ttl: ttl}
}

// Issue mints a credential for the user and persists the session row. The
// returned secret half exists nowhere else and cannot be recovered later.
func (s *SessionService) Issue(ctx context.Context, userID string) (*model.Credential, error) {
	p1, err := newToken()
	if err != nil {
		return nil, err
	}
	p2, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	_, err = s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token_p1, token_p2_hash, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		platform.NewID(), userID, p1, s.hashSecret(p2), now, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &model.Credential{P1: p1, P2: p2, ExpiresAt: expiresAt}, nil
}

// Verify resolves a presented credential to a user id. Expired sessions are
// deleted on sight (lazy expiry); the deletion is best effort and the
// ErrSessionExpired result does not depend on it.
func (s *SessionService) Verify(ctx context.Context, p1, p2 string) (string, error) {
	var (
		userID     string
		storedHash string
		expiresAt  time.Time
	)
	err := s.db.QueryRow(ctx,
		`SELECT user_id, token_p2_hash, expires_at FROM sessions WHERE token_p1 = $1`, p1,
	).Scan(&userID, &storedHash, &expiresAt)
	if err != nil {
		if isNoRows(err) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}

	if !s.secretMatches(p2, storedHash) {
		return "", ErrSessionNotFound
	}

	if time.Now().After(expiresAt) {
		_, _ = s.db.Exec(ctx, `DELETE FROM sessions WHERE token_p1 = $1`, p1)
		return "", ErrSessionExpired
	}

	return userID, nil
}

// Revoke deletes the session row for the given lookup key. Revoking an
// unknown or already-revoked session is not an error.
func (s *SessionService) Revoke(ctx context.Context, p1 string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token_p1 = $1`, p1)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAllForUser deletes every session belonging to the user, e.g. after
// an identity change.
func (s *SessionService) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry. Verify already rejects
// and lazily deletes them; this sweep is storage hygiene only.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *SessionService) hashSecret(p2 string) string {
	return hex.EncodeToString(s.macSecret(p2))
}

// secretMatches hashes the presented secret and compares it against the
// stored hash with subtle.ConstantTimeCompare. Hashing first also fixes the
// compared length, so the cost does not depend on the presented value.
func (s *SessionService) secretMatches(presented, storedHash string) bool {
	stored, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(s.macSecret(presented), stored) == 1
}

func (s *SessionService) macSecret(p2 string) []byte {
	mac := hmac.New(sha256.New, s.hashKey)
	mac.Write([]byte(p2))
	return mac.Sum(nil)
}
