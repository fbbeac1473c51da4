package model

import "time"

// Session is the persisted half of a split-token credential. TokenP1 is the
// public lookup key; only a keyed hash of the secret half is stored.
type Session struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	TokenP1     string    `json:"-" db:"token_p1"`
	TokenP2Hash string    `json:"-" db:"token_p2_hash"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
}

// Credential is the raw split token handed to the client exactly once at
// issuance. The secret half is never retrievable again.
type Credential struct {
	P1        string
	P2        string
	ExpiresAt time.Time
}
