package model

import "time"

// AuthState correlates an outbound authorization request with its expected
// callback. Rows are single use: consumption deletes them.
type AuthState struct {
	ID        string    `json:"id" db:"id"`
	CSRFState string    `json:"-" db:"csrf_state"`
	Nonce     string    `json:"-" db:"nonce"`
	ReturnURL string    `json:"return_url" db:"return_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
