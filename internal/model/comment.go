package model

import "time"

// Comment is attached to a problem and carries an ordered list of replies.
//
// Replies are embedded, not a separate table: a reply has no identity of its
// own and its lifetime is exactly its parent comment's. Insertion order is
// significant and must survive concurrent appends (see the repository's
// AppendReply).
//
// ProblemID is not checked against the problems table at creation time, and
// deleting a problem does not delete its comments — orphaned comments are an
// accepted, documented property of the data model.
type Comment struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problemId"`
	Text      string    `json:"text"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reply is an embedded element of a Comment's replies sequence. Once
// appended it is never edited or removed.
type Reply struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
