// Package model defines the data structures used throughout the application.
package model

import "time"

// User is a registered account on the discussion board.
//
// Username and email are both unique at the store level. PasswordHash is the
// full bcrypt output (salt included) and is never serialized to JSON — the
// `json:"-"` tag guarantees it cannot leak through any handler response.
//
// Technologies is the free-form tag list chosen at registration
// (e.g. ["react", "go"]). It is stored as a JSON array in a single column;
// nothing ever queries individual tags.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	JobPosition  string    `json:"jobPosition"`
	Technologies []string  `json:"technologies"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
