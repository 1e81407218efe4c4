// Package profile holds the student profile and its pure update mutator.
package profile

import (
	"errors"
	"time"
)

// ErrEmailImmutable means an update tried to change the email address,
// which is fixed at account creation.
var ErrEmailImmutable = errors.New("email cannot be changed")

// ErrEmptyName means an update tried to clear the display name.
var ErrEmptyName = errors.New("name cannot be empty")

// Profile is one student's account profile.
type Profile struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	SchoolBoard string    `json:"schoolBoard,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	JoinedAt    time.Time `json:"joinDate"`
}

// Update carries the fields a student may change. Nil pointers leave the
// corresponding field untouched.
type Update struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	SchoolBoard *string `json:"schoolBoard,omitempty"`
	Grade       *string `json:"grade,omitempty"`
}

// Apply merges an update into the profile. Any attempt to set the email is
// rejected outright, even to the same value, so a stale client cannot
// smuggle an address change through.
func Apply(p Profile, upd Update) (Profile, error) {
	if upd.Email != nil {
		return p, ErrEmailImmutable
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return p, ErrEmptyName
		}
		p.Name = *upd.Name
	}
	if upd.AvatarURL != nil {
		p.AvatarURL = *upd.AvatarURL
	}
	if upd.SchoolBoard != nil {
		p.SchoolBoard = *upd.SchoolBoard
	}
	if upd.Grade != nil {
		p.Grade = *upd.Grade
	}
	return p, nil
}
