package auth

import "time"

// User is the domain entity. PasswordHash is nil for OAuth-only
// accounts; GoogleID is nil for password-only accounts.
type User struct {
	ID             int
	Email          string
	PasswordHash   *string
	GoogleID       *string
	Name           *string
	EmailVerified  bool
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Public returns the JSON-safe representation of the user.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":              u.ID,
		"email":           u.Email,
		"name":            u.Name,
		"email_verified":  u.EmailVerified,
		"profile_picture": u.ProfilePicture,
		"created_at":      u.CreatedAt,
		"has_password":    u.PasswordHash != nil,
		"has_google_auth": u.GoogleID != nil,
	}
}
