package services

import (
	"context"

	"golang.org/x/oauth2"
)

// GoogleIDTokenPayload carries the identity claims extracted from a validated
// Google ID token.
type GoogleIDTokenPayload struct {
	Email         string
	EmailVerified bool
	Name          string
	SubjectID     string
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange flow used for SSO
// sign-in.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies the ID token with Google and returns its
	// identity claims.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*GoogleIDTokenPayload, error)
}
