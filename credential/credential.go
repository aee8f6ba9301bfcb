package credential

import "strings"

// Credential represents the bearer token(s) issued by the authentication
// server, together with the identity fields returned alongside them.
// Created on successful sign-in or refresh, overwritten on refresh, and
// destroyed on sign-out or unrecoverable refresh failure.
type Credential struct {
	// AccessToken is the short-lived bearer token attached to every
	// authenticated request as "Authorization: Bearer <token>".
	AccessToken string `json:"access_token" yaml:"access_token"`

	// RefreshToken is the longer-lived token exchanged for a new access
	// token when the latter expires. Not all flows issue one.
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`

	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	DisplayName string `json:"name,omitempty" yaml:"name,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	RoleID      string `json:"roles_id,omitempty" yaml:"roles_id,omitempty"`
}

// HasAccessToken reports whether a usable access token is present.
func (c *Credential) HasAccessToken() bool {
	return c != nil && strings.TrimSpace(c.AccessToken) != ""
}

// HasRefreshToken reports whether a refresh token was issued.
func (c *Credential) HasRefreshToken() bool {
	return c != nil && strings.TrimSpace(c.RefreshToken) != ""
}

// Profile is the persisted user-profile record, stored alongside the
// credential and cleared together with it on sign-out.
type Profile struct {
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	DisplayName string `json:"name,omitempty" yaml:"name,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	RoleID      string `json:"roles_id,omitempty" yaml:"roles_id,omitempty"`
}

// Merge copies the non-empty fields of partial into p.
func (p *Profile) Merge(partial Profile) {
	if partial.Username != "" {
		p.Username = partial.Username
	}
	if partial.DisplayName != "" {
		p.DisplayName = partial.DisplayName
	}
	if partial.Email != "" {
		p.Email = partial.Email
	}
	if partial.Role != "" {
		p.Role = partial.Role
	}
	if partial.RoleID != "" {
		p.RoleID = partial.RoleID
	}
}
