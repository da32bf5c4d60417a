package models

import (
	"database/sql"
	"time"
)

// NullString is a helper function to create a sql.NullString from a string.
// If the input string is empty, it returns a NullString with Valid set to false.
// Otherwise, it returns a NullString with the given string and Valid set to true.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// User is an account created through one of the OAuth providers.
type User struct {
	ID             int64          `json:"id" example:"1" format:"int64" readOnly:"true"`
	Username       string         `json:"username" example:"octocat"`
	DisplayName    sql.NullString `json:"display_name,omitempty" swaggertype:"string" example:"The Octocat"`
	Email          sql.NullString `json:"email,omitempty" swaggertype:"string" format:"email" example:"octocat@example.com"`
	Provider       string         `json:"provider" example:"github" enums:"github,apple"` // OAuth provider that owns this identity.
	ProviderUserID string         `json:"provider_user_id" example:"583231"`              // Stable user ID on the provider side.
	IsAdmin        bool           `json:"is_admin" example:"false"`
	CreatedAt      time.Time      `json:"created_at" readOnly:"true"`
	UpdatedAt      time.Time      `json:"updated_at" readOnly:"true"`
}

// Conversation is a thread of messages owned by a single user.
type Conversation struct {
	ID        string    `json:"id" example:"3f1f9a6e-0b53-4f44-9c6e-6a2f1d8b9c11" readOnly:"true"`
	UserID    int64     `json:"user_id" example:"1" format:"int64" readOnly:"true"`
	Title     string    `json:"title" example:"Debugging a flaky test"`
	CreatedAt time.Time `json:"created_at" readOnly:"true"`
	UpdatedAt time.Time `json:"updated_at" readOnly:"true"` // Bumped whenever a message is appended.
}

// Message roles. System messages come from configuration, never from clients.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single turn inside a conversation.
type Message struct {
	ID             string    `json:"id" example:"9d2b1c7a-5e0f-4a31-8f5d-2c4e6b8a0d13" readOnly:"true"`
	ConversationID string    `json:"conversation_id" readOnly:"true"`
	Role           string    `json:"role" example:"user" enums:"user,assistant,system"`
	Content        string    `json:"content" example:"Why does this test only fail on CI?"`
	CreatedAt      time.Time `json:"created_at" readOnly:"true"`
}

// Session is an opaque bearer token exchanged for an authenticated user.
// Tokens are random UUIDs; expiry is enforced on lookup.
type Session struct {
	Token     string    `json:"token" readOnly:"true"`
	UserID    int64     `json:"user_id" format:"int64" readOnly:"true"`
	CreatedAt time.Time `json:"created_at" readOnly:"true"`
	ExpiresAt time.Time `json:"expires_at" readOnly:"true"`
}

// OAuthUserInfo is the provider-neutral identity extracted from a completed
// OAuth flow, used to upsert a local User row.
type OAuthUserInfo struct {
	Provider       string
	ProviderUserID string
	Username       string
	Email          string
	DisplayName    string
}

// AppleIdentityClaims are the claims we read out of an Apple identity token.
type AppleIdentityClaims struct {
	Issuer         string `json:"iss"`
	Audience       string `json:"aud"`
	Subject        string `json:"sub"`
	Email          string `json:"email,omitempty"`
	ExpiresAt      int64  `json:"exp"`
	IssuedAt       int64  `json:"iat"`
	EmailVerified  any    `json:"email_verified,omitempty"` // Apple sends this as a bool or the string "true".
	IsPrivateEmail any    `json:"is_private_email,omitempty"`
}
