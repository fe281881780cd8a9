package services

import (
	"context"
	"errors"
	"fmt"

	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthService implements the Google SSO code-exchange flow.
type GoogleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService from application config.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &GoogleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *GoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns
// its identity claims.
func (s *GoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*portssvc.GoogleIDTokenPayload, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	out := &portssvc.GoogleIDTokenPayload{SubjectID: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		out.EmailVerified = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		out.Name = v
	}
	return out, nil
}
