package api

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// UsersService manages the user accounts visible to administrators.
type UsersService service

// User is a server-side user account.
type User struct {
	ID          string    `json:"id,omitempty"`
	Username    string    `json:"username"`
	DisplayName string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role,omitempty"`
	RoleID      string    `json:"roles_id,omitempty"`
	Active      bool      `json:"active,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// UserList is a page of users.
type UserList struct {
	Items []User `json:"items"`
	Page  Page   `json:"pagination"`
}

// List returns a page of user accounts.
func (s *UsersService) List(ctx context.Context, opts ListOptions) (*UserList, error) {
	var list UserList
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetQueryParams(opts.query()).
		SetResult(&list).
		Get("/users")
	if err != nil {
		return nil, errors.Wrap(err, "[UsersService.List]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single user by ID.
func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var user User
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetResult(&user).
		Get("/users/" + id)
	if err != nil {
		return nil, errors.Wrap(err, "[UsersService.Get]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites a user's mutable fields (display name, email, role
// assignment, active flag).
func (s *UsersService) Update(ctx context.Context, user User) (*User, error) {
	if user.ID == "" {
		return nil, errors.New("[UsersService.Update] id is required")
	}

	var updated User
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetBody(&user).
		SetResult(&updated).
		Put("/users/" + user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[UsersService.Update]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &updated, nil
}
