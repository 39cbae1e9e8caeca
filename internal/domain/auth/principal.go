package auth

import (
	"github.com/google/uuid"
)

// Principal is the resolved identity for one session. Exactly one principal
// is active per session; its role never changes for the session's lifetime.
// A guest principal has no backing row: ID stays uuid.Nil and Guest is set,
// so downstream features can tell ephemeral identities from persistent ones
// before creating foreign-key relations.
type Principal struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	Email       string    `json:"email,omitempty"`
	ClassName   string    `json:"class_name,omitempty"`
	Score       int       `json:"score"`
	Stars       int       `json:"stars"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Guest       bool      `json:"guest"`
}

func (p Principal) Registered() bool {
	return !p.Guest && p.ID != uuid.Nil
}
