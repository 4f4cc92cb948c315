package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/model"
	"github.com/sathira/codewizard/internal/repository"
)

// ProblemRepository is the SQLite-backed problem store.
type ProblemRepository struct {
	db *DB
}

var _ repository.ProblemRepository = (*ProblemRepository)(nil)

func NewProblemRepository(db *DB) *ProblemRepository {
	return &ProblemRepository{db: db}
}

// Create inserts a new problem, generating id and created_at in place.
func (r *ProblemRepository) Create(ctx context.Context, p *model.Problem) error {
	p.ID = xid.New().String()
	p.CreatedAt = time.Now().UTC()

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO problems (id, title, description, owner_email, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.OwnerEmail, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting problem: %w", wrapErr(err))
	}
	return nil
}

func (r *ProblemRepository) GetByID(ctx context.Context, id string) (*model.Problem, error) {
	var p model.Problem

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, owner_email, created_at
		 FROM problems WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.OwnerEmail, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("problem", id)
		}
		return nil, fmt.Errorf("sqlite: getting problem %s: %w", id, wrapErr(err))
	}

	return &p, nil
}

// List returns every problem in creation order.
func (r *ProblemRepository) List(ctx context.Context) ([]model.Problem, error) {
	return r.query(ctx,
		`SELECT id, title, description, owner_email, created_at
		 FROM problems ORDER BY created_at, id`)
}

// ListByOwner returns the problems created under the given email, oldest
// first. An empty slice is a valid result here; the store does not decide
// whether "no problems" is an error.
func (r *ProblemRepository) ListByOwner(ctx context.Context, email string) ([]model.Problem, error) {
	return r.query(ctx,
		`SELECT id, title, description, owner_email, created_at
		 FROM problems WHERE owner_email = ? ORDER BY created_at, id`, email)
}

func (r *ProblemRepository) query(ctx context.Context, query string, args ...any) ([]model.Problem, error) {
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying problems: %w", wrapErr(err))
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.OwnerEmail, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning problem: %w", wrapErr(err))
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating problems: %w", wrapErr(err))
	}

	return problems, nil
}

// Update replaces title and description in place. Returns NotFound if the
// id does not exist. Ownership is not checked here or anywhere else.
func (r *ProblemRepository) Update(ctx context.Context, p *model.Problem) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE problems SET title = ?, description = ? WHERE id = ?`,
		p.Title, p.Description, p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating problem %s: %w", p.ID, wrapErr(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating problem %s: %w", p.ID, wrapErr(err))
	}
	if n == 0 {
		return apperror.NotFound("problem", p.ID)
	}

	return nil
}

// Delete removes the problem row only. Its comments are left behind on
// purpose; there is no cascade.
func (r *ProblemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.conn.ExecContext(ctx, `DELETE FROM problems WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting problem %s: %w", id, wrapErr(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting problem %s: %w", id, wrapErr(err))
	}
	if n == 0 {
		return apperror.NotFound("problem", id)
	}

	return nil
}
