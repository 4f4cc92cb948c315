package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/model"
	"github.com/sathira/codewizard/internal/repository"
)

// CommentRepository is the SQLite-backed comment thread store.
//
// Replies live inside the comment row as a JSON array (column `replies`),
// mirroring the embedded-document layout of the original store. The one hard
// correctness requirement in this repository is AppendReply: concurrent
// appends against the same comment must not lose a reply.
type CommentRepository struct {
	db *DB
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment with an empty reply list.
//
// The problem id is deliberately NOT checked against the problems table; a
// comment pointing at a deleted (or never-existing) problem is representable
// and survives. GET /problems/{id}/comments simply returns nothing for it.
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	c.ID = xid.New().String()
	c.CreatedAt = time.Now().UTC()
	if c.Replies == nil {
		c.Replies = []model.Reply{}
	}

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, problem_id, text, replies, created_at)
		 VALUES (?, ?, ?, '[]', ?)`,
		c.ID, c.ProblemID, c.Text, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting comment: %w", wrapErr(err))
	}

	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var (
		c       model.Comment
		replies string
	)

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, problem_id, text, replies, created_at
		 FROM comments WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.ProblemID, &c.Text, &replies, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %s: %w", id, wrapErr(err))
	}

	if err := json.Unmarshal([]byte(replies), &c.Replies); err != nil {
		return nil, fmt.Errorf("sqlite: decoding replies for comment %s: %w", id, err)
	}

	return &c, nil
}

// ListByProblem returns the problem's comments oldest first. No comments is
// an empty slice, not an error.
func (r *CommentRepository) ListByProblem(ctx context.Context, problemID string) ([]model.Comment, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, problem_id, text, replies, created_at
		 FROM comments WHERE problem_id = ? ORDER BY created_at, id`,
		problemID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying comments for problem %s: %w", problemID, wrapErr(err))
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var (
			c       model.Comment
			replies string
		)
		if err := rows.Scan(&c.ID, &c.ProblemID, &c.Text, &replies, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment: %w", wrapErr(err))
		}
		if err := json.Unmarshal([]byte(replies), &c.Replies); err != nil {
			return nil, fmt.Errorf("sqlite: decoding replies for comment %s: %w", c.ID, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", wrapErr(err))
	}

	return comments, nil
}

// AppendReply appends a reply to the end of the comment's reply sequence
// and returns the updated comment.
//
// The append is a single UPDATE using json_insert's '$[#]' path (append to
// array). There is no read-modify-write window in application code, so two
// concurrent appends against the same comment both land: SQLite serializes
// the writes and each one extends whatever array the previous write left.
// This is the same shape as the document store's atomic push-to-array
// operation the service was originally built on.
func (r *CommentRepository) AppendReply(ctx context.Context, commentID string, reply model.Reply) (*model.Comment, error) {
	payload, err := json.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("sqlite: encoding reply: %w", err)
	}

	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE comments SET replies = json_insert(replies, '$[#]', json(?)) WHERE id = ?`,
		string(payload), commentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: appending reply to comment %s: %w", commentID, wrapErr(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: appending reply to comment %s: %w", commentID, wrapErr(err))
	}
	if n == 0 {
		return nil, apperror.NotFound("comment", commentID)
	}

	return r.GetByID(ctx, commentID)
}
