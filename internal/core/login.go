package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/bookclub/internal/model"
)

// VerifiedIdentity is what the identity provider adapter hands back after a
// successful code exchange and ID-token validation.
type VerifiedIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
}

// IdentityVerifier is the OIDC relying-party adapter. Implementations own
// the provider redirect, the authorization-code exchange, and ID-token
// validation; this package only supplies the state and nonce values and
// consumes the verified identity.
type IdentityVerifier interface {
	AuthCodeURL(state, nonce string) string
	Exchange(ctx context.Context, code, expectedNonce string) (*VerifiedIdentity, error)
}

// LoginService orchestrates the federated login flow: pending state, code
// exchange, user resolution, session issuance.
type LoginService struct {
	log             zerolog.Logger
	states          *AuthStateService
	users           *UserService
	sessions        *SessionService
	verifier        IdentityVerifier
	exchangeTimeout time.Duration
}

func NewLoginService(
	log zerolog.Logger,
	states *AuthStateService,
	users *UserService,
	sessions *SessionService,
	verifier IdentityVerifier,
	exchangeTimeout time.Duration,
) *LoginService {
	return &LoginService{
		log:             log,
		states:          states,
		users:           users,
		sessions:        sessions,
		verifier:        verifier,
		exchangeTimeout: exchangeTimeout,
	}
}

// Begin records a pending login and returns the provider authorize URL to
// redirect the browser to.
func (s *LoginService) Begin(ctx context.Context, returnURL string) (string, error) {
	state, err := s.states.Begin(ctx, returnURL)
	if err != nil {
		return "", err
	}
	return s.verifier.AuthCodeURL(state.CSRFState, state.Nonce), nil
}

// Callback completes a login: it consumes the pending state (single use),
// exchanges the authorization code under a bounded timeout, resolves the
// local user, and issues a session. Any verification failure leaves no
// partial session behind.
func (s *LoginService) Callback(ctx context.Context, csrfState, code string) (*model.Credential, string, error) {
	state, err := s.states.Consume(ctx, csrfState)
	if err != nil {
		return nil, "", err
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
	defer cancel()

	identity, err := s.verifier.Exchange(exchangeCtx, code, state.Nonce)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity exchange failed")
		return nil, "", fmt.Errorf("%w: %v", ErrIdentityVerification, err)
	}
	if !identity.EmailVerified {
		return nil, "", fmt.Errorf("%w: email address is not verified", ErrIdentityVerification)
	}

	user, err := s.users.ResolveOrCreate(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	cred, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login completed")
	return cred, state.ReturnURL, nil
}
