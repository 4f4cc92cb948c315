package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/model"
	"github.com/sathira/codewizard/internal/repository"
)

// CommentService handles comment threads: comments attached to a problem,
// each carrying an ordered list of embedded replies.
type CommentService struct {
	repo   repository.CommentRepository
	logger *slog.Logger
}

func NewCommentService(repo repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{repo: repo, logger: logger}
}

// AddComment attaches a new comment (with no replies yet) to a problem.
//
// The problem id is taken on faith: there is no existence check, so a
// comment can be created against an id that was deleted or never existed.
// That orphan-tolerance is intentional and covered by tests.
func (s *CommentService) AddComment(ctx context.Context, problemID, text string) (*model.Comment, error) {
	problemID = strings.TrimSpace(problemID)
	if problemID == "" {
		return nil, apperror.ValidationFailed("problemId", "problem id is required")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}

	comment := &model.Comment{
		ProblemID: problemID,
		Text:      text,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		s.logger.Error("failed to add comment",
			slog.String("problemId", problemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	s.logger.Info("comment added",
		slog.String("id", comment.ID),
		slog.String("problemId", problemID),
	)

	return comment, nil
}

// ListForProblem returns a problem's comments in creation order. A problem
// with no comments (or a nonexistent problem id) yields an empty list, not
// an error.
func (s *CommentService) ListForProblem(ctx context.Context, problemID string) ([]model.Comment, error) {
	problemID = strings.TrimSpace(problemID)
	if problemID == "" {
		return nil, apperror.ValidationFailed("problemId", "problem id is required")
	}

	comments, err := s.repo.ListByProblem(ctx, problemID)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.String("problemId", problemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments for %s: %w", problemID, err)
	}

	return comments, nil
}

// AddReply appends a reply to the end of a comment's reply sequence and
// returns the updated comment. Fails with ErrNotFound if the comment does
// not exist.
//
// The append itself is atomic in the repository; two concurrent replies to
// the same comment both land, in some serial order.
func (s *CommentService) AddReply(ctx context.Context, commentID, text string) (*model.Comment, error) {
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return nil, apperror.ValidationFailed("commentId", "comment id is required")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}

	reply := model.Reply{
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	comment, err := s.repo.AppendReply(ctx, commentID, reply)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reply added",
		slog.String("commentId", commentID),
		slog.Int("replies", len(comment.Replies)),
	)

	return comment, nil
}
