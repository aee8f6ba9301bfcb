package api

import (
	"context"

	"github.com/pkg/errors"
)

// RolesService manages roles and their permission settings.
type RolesService service

// Role is a named set of permissions that can be assigned to users.
type Role struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// RoleSettings holds the per-role feature toggles exposed at /role/settings.
type RoleSettings struct {
	RoleID          string `json:"roles_id"`
	CanUpload       bool   `json:"can_upload"`
	CanManageUsers  bool   `json:"can_manage_users"`
	CanViewSyncLogs bool   `json:"can_view_sync_logs"`
	CanEditSettings bool   `json:"can_edit_settings"`
}

// List returns all roles.
func (s *RolesService) List(ctx context.Context) ([]Role, error) {
	var roles []Role
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetResult(&roles).
		Get("/roles")
	if err != nil {
		return nil, errors.Wrap(err, "[RolesService.List]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return roles, nil
}

// Create stores a new role and returns it with its assigned ID.
func (s *RolesService) Create(ctx context.Context, role Role) (*Role, error) {
	if role.Name == "" {
		return nil, errors.New("[RolesService.Create] name is required")
	}

	var created Role
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetBody(&role).
		SetResult(&created).
		Post("/roles")
	if err != nil {
		return nil, errors.Wrap(err, "[RolesService.Create]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update overwrites an existing role.
func (s *RolesService) Update(ctx context.Context, role Role) (*Role, error) {
	if role.ID == "" {
		return nil, errors.New("[RolesService.Update] id is required")
	}

	var updated Role
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetBody(&role).
		SetResult(&updated).
		Put("/roles/" + role.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[RolesService.Update]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a role. Users holding the role fall back to the server's
// default role.
func (s *RolesService) Delete(ctx context.Context, id string) error {
	resp, err := s.client.newRequest().
		SetContext(ctx).
		Delete("/roles/" + id)
	if err != nil {
		return errors.Wrap(err, "[RolesService.Delete]")
	}
	return checkResponse(resp)
}

// Settings returns the permission settings for a role.
func (s *RolesService) Settings(ctx context.Context, roleID string) (*RoleSettings, error) {
	var settings RoleSettings
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetQueryParam("roles_id", roleID).
		SetResult(&settings).
		Get("/role/settings")
	if err != nil {
		return nil, errors.Wrap(err, "[RolesService.Settings]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings overwrites the permission settings for a role.
func (s *RolesService) UpdateSettings(ctx context.Context, settings RoleSettings) (*RoleSettings, error) {
	if settings.RoleID == "" {
		return nil, errors.New("[RolesService.UpdateSettings] roles_id is required")
	}

	var updated RoleSettings
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetBody(&settings).
		SetResult(&updated).
		Put("/role/settings")
	if err != nil {
		return nil, errors.Wrap(err, "[RolesService.UpdateSettings]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &updated, nil
}
