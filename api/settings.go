package api

import (
	"context"

	"github.com/pkg/errors"
)

// SettingsService reads and writes the workspace settings.
type SettingsService service

// Settings is the workspace configuration exposed on the settings screen.
type Settings struct {
	WorkspaceName string `json:"workspace_name,omitempty"`
	GreetingText  string `json:"greeting_text,omitempty"`
	SyncSchedule  string `json:"sync_schedule,omitempty"` // cron expression
	RetentionDays int    `json:"retention_days,omitempty"`
	AllowSignup   bool   `json:"allow_signup,omitempty"`
	DefaultRoleID string `json:"default_roles_id,omitempty"`
}

// Get returns the current workspace settings.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	var settings Settings
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetResult(&settings).
		Get("/settings")
	if err != nil {
		return nil, errors.Wrap(err, "[SettingsService.Get]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update overwrites the workspace settings and returns the stored result.
func (s *SettingsService) Update(ctx context.Context, settings Settings) (*Settings, error) {
	var updated Settings
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetBody(&settings).
		SetResult(&updated).
		Put("/settings")
	if err != nil {
		return nil, errors.Wrap(err, "[SettingsService.Update]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &updated, nil
}
