package dto

// LoginRequest defines the credentials payload for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         UserResponse `json:"user"`
}

// GoogleLoginRequest carries the Google SSO credentials: either an
// authorization code from the redirect flow or a raw ID token from the
// client-side flow.
type GoogleLoginRequest struct {
	Code    string `json:"code"`
	IDToken string `json:"idToken"`
}

// RefreshRequest carries a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshResponse returns a fresh token pair.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
