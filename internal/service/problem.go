package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/model"
	"github.com/sathira/codewizard/internal/repository"
)

const (
	MaxTitleLength = 200
)

// ProblemService handles the problem board's business logic.
type ProblemService struct {
	repo   repository.ProblemRepository
	logger *slog.Logger
}

func NewProblemService(repo repository.ProblemRepository, logger *slog.Logger) *ProblemService {
	return &ProblemService{repo: repo, logger: logger}
}

// Create posts a new problem under the given owner email.
//
// Title and owner email are required; the description may be empty. There is
// no content or length validation beyond the title cap — the board accepts
// what the form sends.
func (s *ProblemService) Create(ctx context.Context, title, description, ownerEmail string) (*model.Problem, error) {
	title = strings.TrimSpace(title)
	ownerEmail = strings.TrimSpace(ownerEmail)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if ownerEmail == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}

	problem := &model.Problem{
		Title:       title,
		Description: description,
		OwnerEmail:  ownerEmail,
	}

	if err := s.repo.Create(ctx, problem); err != nil {
		s.logger.Error("failed to create problem",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating problem: %w", err)
	}

	s.logger.Info("problem created",
		slog.String("id", problem.ID),
		slog.String("owner", problem.OwnerEmail),
	)

	return problem, nil
}

// ListAll returns every problem regardless of caller. No pagination, no
// visibility filtering.
func (s *ProblemService) ListAll(ctx context.Context) ([]model.Problem, error) {
	problems, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list problems", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing problems: %w", err)
	}
	return problems, nil
}

// ListByOwner returns the problems posted under the given email.
//
// Zero matches is reported as NotFound, conflating "no problems yet" with
// "error". That is how the board has always behaved and clients depend on
// the 404, so it stays.
func (s *ProblemService) ListByOwner(ctx context.Context, email string) ([]model.Problem, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}

	problems, err := s.repo.ListByOwner(ctx, email)
	if err != nil {
		s.logger.Error("failed to list problems by owner",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing problems for %s: %w", email, err)
	}

	if len(problems) == 0 {
		return nil, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "no problems found for this email",
		}
	}

	return problems, nil
}

// Update replaces a problem's title and description.
//
// The caller's identity is not checked against the problem's owner: any
// authenticated user can update any problem. This matches the original
// behavior and is preserved knowingly rather than fixed in passing.
func (s *ProblemService) Update(ctx context.Context, id, title, description string) (*model.Problem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "problem id is required")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	problem, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	problem.Title = title
	problem.Description = description

	if err := s.repo.Update(ctx, problem); err != nil {
		return nil, err
	}

	s.logger.Info("problem updated", slog.String("id", id))

	return problem, nil
}

// Delete removes a problem by id. Comments attached to it are NOT deleted;
// they remain as orphans (see the repository docs). Ownership is not checked
// here either.
func (s *ProblemService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "problem id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("problem deleted", slog.String("id", id))
	return nil
}
