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

// UserRepository is the SQLite-backed credential store.
type UserRepository struct {
	db *DB
}

// compile-time check against the service-facing interface
var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user, generating id and created_at in place.
//
// Uniqueness of username and email is enforced by the table's UNIQUE
// constraints, not by a pre-check — the constraint violation is translated
// to apperror.ErrDuplicateKey, so two racing registrations cannot both win.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	techs, err := json.Marshal(user.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: encoding technologies: %w", err)
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err = r.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, job_position, technologies, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.JobPosition,
		string(techs),
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateKey("user", "username or email")
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, wrapErr(err))
	}

	return nil
}

// GetByUsername looks a user up by username. Used by login, so the full
// record, password hash included, comes back.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getWhere(ctx, "username", username)
}

// GetByEmail looks a user up by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getWhere(ctx, "email", email)
}

func (r *UserRepository) getWhere(ctx context.Context, column, value string) (*model.User, error) {
	var (
		u     model.User
		techs string
	)

	// column is one of two package-internal constants, never caller input
	query := fmt.Sprintf(
		`SELECT id, username, email, job_position, technologies, password_hash, created_at
		 FROM users WHERE %s = ?`, column)

	err := r.db.conn.QueryRowContext(ctx, query, value).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.JobPosition,
		&techs,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", value)
		}
		return nil, fmt.Errorf("sqlite: getting user by %s %q: %w", column, value, wrapErr(err))
	}

	if err := json.Unmarshal([]byte(techs), &u.Technologies); err != nil {
		return nil, fmt.Errorf("sqlite: decoding technologies for user %s: %w", u.ID, err)
	}

	return &u, nil
}
