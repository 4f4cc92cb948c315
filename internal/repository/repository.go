// Package repository declares the persistence interfaces the service layer
// programs against. The concrete implementation lives in repository/sqlite.
package repository

import (
	"context"

	"github.com/sathira/codewizard/internal/model"
)

type UserRepository interface {
	// Create persists a new user. Returns apperror.ErrDuplicateKey if the
	// username or email is already taken.
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	GetByID(ctx context.Context, id string) (*model.Problem, error)
	// List returns every problem in creation order. No pagination.
	List(ctx context.Context) ([]model.Problem, error)
	// ListByOwner returns the problems whose owner email matches. An empty
	// result is returned as an empty slice; the "empty means 404" rule is a
	// service-layer decision.
	ListByOwner(ctx context.Context, email string) ([]model.Problem, error)
	Update(ctx context.Context, problem *model.Problem) error
	// Delete removes a problem. It does NOT touch the problem's comments;
	// they remain as orphans.
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	// Create appends a new comment with an empty reply list. The problem id
	// is not checked for existence.
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByProblem returns the problem's comments in creation order; an
	// empty slice (not an error) when there are none.
	ListByProblem(ctx context.Context, problemID string) ([]model.Comment, error)
	// AppendReply atomically appends a reply to the comment's reply sequence
	// and returns the updated comment. Concurrent appends against the same
	// comment must all land: the implementation may not read-modify-write
	// the sequence outside the store's own atomicity.
	AppendReply(ctx context.Context, commentID string, reply model.Reply) (*model.Comment, error)
}
