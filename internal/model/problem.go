package model

import "time"

// Problem is a discussion topic posted by a user.
//
// OwnerEmail is a weak reference: it records which account created the
// problem but there is no foreign key to the users table, and nothing stops
// a problem from outliving its owner. Comments reference problems the same
// way (by id, no constraint).
type Problem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerEmail  string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}
