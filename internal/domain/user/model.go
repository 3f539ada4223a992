package user

import "strings"

// User is a session-scoped identity. There is no credential verification in
// this system: a user record is minted fresh on every login or registration
// and lives only for the active session. A production deployment would
// replace this with a real authentication collaborator.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IsZero reports whether the user is unset (no active session).
func (u User) IsZero() bool {
	return u.ID == 0
}

// NameFromEmail derives a display name from the local part of an email address.
func NameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
