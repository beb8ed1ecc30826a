package domain

import "time"

// User is the account model for people who sign in to the service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the trimmed projection embedded in API responses and
// activity feeds.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// Summary projects a user to its summary form.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
