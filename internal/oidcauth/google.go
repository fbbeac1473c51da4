// Package oidcauth adapts an OpenID Connect provider to the login flow's
// IdentityVerifier contract. It owns provider discovery, the authorization
// code exchange, and ID-token validation.
package oidcauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"

	"github.com/edvin/bookclub/internal/core"
)

const googleIssuer = "https://accounts.google.com"

// Verifier is a relying-party client for one OIDC provider.
type Verifier struct {
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier discovers Google's OIDC endpoints and returns a verifier
// bound to the given client credentials. redirectURL must match one of the
// redirect URIs registered with the provider.
func NewGoogleVerifier(ctx context.Context, clientID, clientSecret, redirectURL string) (*Verifier, error) {
	ctx = oidc.ClientContext(ctx, cleanhttp.DefaultPooledClient())
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &Verifier{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// AuthCodeURL returns the provider authorize URL carrying the CSRF state and
// the nonce that must come back inside the ID token.
func (v *Verifier) AuthCodeURL(state, nonce string) string {
	return v.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

type idTokenClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Nonce         string `json:"nonce"`
}

// Exchange redeems the authorization code, validates the ID token's signature
// and standard claims, and checks that its nonce matches the one minted when
// the login began.
func (v *Verifier) Exchange(ctx context.Context, code, expectedNonce string) (*core.VerifiedIdentity, error) {
	ctx = oidc.ClientContext(ctx, cleanhttp.DefaultPooledClient())

	token, err := v.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("token response carries no id_token")
	}

	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	if claims.Nonce != expectedNonce {
		return nil, fmt.Errorf("id token nonce mismatch")
	}

	return &core.VerifiedIdentity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		GivenName:     claims.GivenName,
		FamilyName:    claims.FamilyName,
	}, nil
}
