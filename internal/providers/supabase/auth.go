package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
)

// GetUser resolves an access token to the user it was issued for
func (c *Client) GetUser(ctx context.Context, accessToken string) (*entities.AuthUser, error) {
	if accessToken == "" {
		return nil, &ProviderError{
			Status:  http.StatusUnauthorized,
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "Access token cannot be empty",
		}
	}

	var user entities.AuthUser
	err := c.do(ctx, request{
		operation: "auth.get_user",
		method:    http.MethodGet,
		path:      "/auth/v1/user",
		bearer:    accessToken,
	}, &user)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &ProviderError{
			Status:  http.StatusUnauthorized,
			Code:    constants.ErrCodeNotFound,
			Message: "User not found for access token",
		}
	}
	return &user, nil
}

// Health pings the auth API health endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{
		operation: "auth.health",
		method:    http.MethodGet,
		path:      "/auth/v1/health",
	}, nil)
}

// ============================================================================
// Admin user management
// ============================================================================

// CreateUserParams are the attributes accepted by the admin create-user endpoint
type CreateUserParams struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

// CreateUser provisions a new auth user through the admin API
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*entities.AuthUser, error) {
	var user entities.AuthUser
	err := c.do(ctx, request{
		operation: "auth.admin.create_user",
		method:    http.MethodPost,
		path:      "/auth/v1/admin/users",
		body:      params,
	}, &user)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDecodeFailed,
			Message: "Provider returned a user without id",
		}
	}
	return &user, nil
}

// DeleteUser removes an auth user through the admin API
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return &ProviderError{
			Code:    constants.ErrCodeBadRequest,
			Message: "User ID cannot be empty",
		}
	}
	return c.do(ctx, request{
		operation: "auth.admin.delete_user",
		method:    http.MethodDelete,
		path:      "/auth/v1/admin/users/" + url.PathEscape(userID),
	}, nil)
}

// listUsersPage is the envelope returned by the admin list endpoint
type listUsersPage struct {
	Users []entities.AuthUser `json:"users"`
}

// ListUsersPage returns one page (1-based) of auth users
func (c *Client) ListUsersPage(ctx context.Context, page, perPage int) ([]entities.AuthUser, error) {
	if page < 1 || perPage < 1 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeBadRequest,
			Message: "Page and per_page must be greater than 0",
		}
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(perPage))

	var resp listUsersPage
	err := c.do(ctx, request{
		operation: "auth.admin.list_users",
		method:    http.MethodGet,
		path:      "/auth/v1/admin/users?" + q.Encode(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

const (
	listUsersPerPage  = 200
	listUsersMaxPages = 500
)

// ListUsers walks every page of the admin listing sequentially
func (c *Client) ListUsers(ctx context.Context) ([]entities.AuthUser, error) {
	var all []entities.AuthUser
	for page := 1; page <= listUsersMaxPages; page++ {
		users, err := c.ListUsersPage(ctx, page, listUsersPerPage)
		if err != nil {
			return nil, err
		}
		all = append(all, users...)
		if len(users) < listUsersPerPage {
			break
		}
	}
	return all, nil
}
