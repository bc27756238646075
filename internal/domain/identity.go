package domain

import "time"

// Identity is what the auth provider supplies about a signed-in account.
// Passed explicitly into every operation - no ambient auth state.
type Identity struct {
	UserID        string
	Email         string
	DisplayName   string
	Phone         string
	EmailVerified bool
}

// User is the persisted record of an account that interacted with the service
type User struct {
	ID           string
	Email        string
	DisplayName  string
	IsSalonOwner bool // set on first salon profile save, never unset

	CreatedAt time.Time
	UpdatedAt time.Time
}
