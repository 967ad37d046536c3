// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered identity. PasswordHash holds a bcrypt digest and
// must never leave the server; use Public for responses.
type User struct {
	ID             string
	UserName       string
	PasswordHash   string
	Email          string
	Birthday       *time.Time
	FavoriteMovies []string
	CreatedAt      time.Time
}

// PublicUser is the subset of User fields safe to return to clients.
type PublicUser struct {
	ID             string   `json:"id"`
	UserName       string   `json:"username"`
	Email          string   `json:"email"`
	Birthday       string   `json:"birthday,omitempty"`
	FavoriteMovies []string `json:"favorite_movies"`
}

// DateLayout is the wire format of birthdays.
const DateLayout = "2006-01-02"

func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		FavoriteMovies: u.FavoriteMovies,
	}
	if p.FavoriteMovies == nil {
		p.FavoriteMovies = []string{}
	}
	if u.Birthday != nil {
		p.Birthday = u.Birthday.Format(DateLayout)
	}
	return p
}

// UserUpdate carries the fields a user may change on their own profile.
// Nil means "leave as is". PasswordHash is already hashed by the caller.
type UserUpdate struct {
	UserName     *string
	PasswordHash *string
	Email        *string
	Birthday     *time.Time
}
