package core

import "errors"

// Authentication failure taxonomy. All of these translate to a rejected
// authentication outcome at the request boundary; only storage failures
// propagate as hard errors. ErrSessionNotFound and ErrSessionExpired must
// surface identically to clients, as must the three conditions collapsed
// into ErrStateNotFound (unknown, replayed, expired).
var (
	ErrStateNotFound        = errors.New("login state not found")
	ErrIdentityVerification = errors.New("identity verification failed")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
)
