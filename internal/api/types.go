package api

import (
	"time"

	"github.com/linkboard/linkboard/internal/store"
)

// --- Auth types ---

// SignupRequest is the request body for POST /api/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the JSON representation of a user. The password hash has
// no field here on purpose.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.DisplayName,
		CreatedAt: u.CreatedAt,
	}
}

// --- Link types ---

// PostRequest is the request body for POST /api/post.
type PostRequest struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

// UpdateLinkRequest is the request body for POST /api/updateLink.
type UpdateLinkRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// DeleteLinkRequest is the request body for POST /api/deleteLink.
type DeleteLinkRequest struct {
	ID string `json:"id"`
}

// DeleteLinkResponse echoes the deleted link's identifier.
type DeleteLinkResponse struct {
	ID string `json:"id"`
}

// LinkResponse is the JSON representation of a single link. Voters is only
// populated by the link operation; feed rows leave it nil.
type LinkResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	PostedBy    string         `json:"posted_by"`
	CreatedAt   time.Time      `json:"created_at"`
	Voters      []UserResponse `json:"voters,omitempty"`
}

func toLinkResponse(l *store.Link) LinkResponse {
	return LinkResponse{
		ID:          l.ID,
		Description: l.Description,
		URL:         l.URL,
		PostedBy:    l.PostedBy,
		CreatedAt:   l.CreatedAt,
	}
}

// FeedResponse is returned by the feed operation. Count reflects the filter
// only, never the pagination window. ID is the deterministic identifier for
// this exact parameter combination.
type FeedResponse struct {
	Links []LinkResponse `json:"links"`
	Count int            `json:"count"`
	ID    string         `json:"id"`
}

// --- Vote types ---

// VoteRequest is the request body for POST /api/vote.
type VoteRequest struct {
	LinkID string `json:"link_id"`
}

// VoteResponse is returned by the vote operation.
type VoteResponse struct {
	LinkID string `json:"link_id"`
	UserID string `json:"user_id"`
}
