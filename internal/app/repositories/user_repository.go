package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mdiallo/gestion-etudiants/internal/app/models"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/dberrors"
)

// Unique constraint on the users table; uniqueness is enforced by the
// store, never emulated with a read-then-write in application code.
const usersEmailConstraint = "users_email_key"

// IUserRepository defines the interface for account database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, lastName, firstName, email string, photo *string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

// UserRepository handles account rows in the users table
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new account and returns the assigned id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (nom, prenom, email, password, role, photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.LastName, user.FirstName, user.Email, user.Password, user.Role, user.Photo).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return 0, apperrors.ErrEmailAlreadyUsed
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, nom, prenom, email, password, role, photo, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.LastName, &user.FirstName, &user.Email, &user.Password,
		&user.Role, &user.Photo, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, nom, prenom, email, password, role, photo, created_at, updated_at
		FROM users
		WHERE email = $1`,
		email).Scan(
		&user.ID, &user.LastName, &user.FirstName, &user.Email, &user.Password,
		&user.Role, &user.Photo, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	return user, nil
}

// UpdateProfile updates an account's name, email and photo reference
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, lastName, firstName, email string, photo *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET nom = $1, prenom = $2, email = $3, photo = $4, updated_at = NOW()
		WHERE id = $5`,
		lastName, firstName, email, photo, id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrEmailAlreadyUsed
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListPhotoPaths returns every non-null account photo reference, for the
// orphan file sweep.
func (r *UserRepository) ListPhotoPaths(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT photo
		FROM users
		WHERE photo IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("error listing photo paths: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("error scanning photo path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo paths: %w", err)
	}

	return paths, nil
}

// UpdateEmail changes an account's email address
func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, updated_at = NOW()
		WHERE id = $2`,
		email, id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrEmailAlreadyUsed
		}
		return fmt.Errorf("error updating email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
