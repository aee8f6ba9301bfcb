package authapi

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents the response from the login and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the bearer token used to access protected resources.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Lifespan: Short-lived (typically 15 minutes - 1 hour)
	AccessToken *string `json:"access_token,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Usage: Send to /auth/refresh when the access token expires.
	// Lifespan: Long-lived (typically 7-30 days)
	// Note: The refresh endpoint may omit this field, in which case the
	// previously issued refresh token remains valid.
	RefreshToken *string `json:"refresh_token,omitempty"`

	// TokenType indicates how to use the access token (always "bearer").
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token. This is a
	// hint - for JWT access tokens the authoritative expiry is the "exp"
	// claim.
	ExpiresIn int `json:"expires_in,omitempty"`

	// User carries the identity record returned on login. The refresh
	// endpoint leaves it empty.
	User *UserRecord `json:"user,omitempty"`
}

// UserRecord is the identity block returned alongside tokens on login.
type UserRecord struct {
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	RoleID      string `json:"roles_id,omitempty"`
}

// ErrorResponse is the error payload the server returns on failed requests.
type ErrorResponse struct {
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorResponse) String() string {
	if e.Title == "" {
		return e.Message
	}
	if e.Message == "" {
		return e.Title
	}
	return e.Title + ": " + e.Message
}
