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

// Unique constraint on the etudiant table
const etudiantIneConstraint = "etudiant_ine_key"

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePhoto(ctx context.Context, id int64, photo string) error
	Delete(ctx context.Context, id int64) error
	DistinctFilieres(ctx context.Context) ([]string, error)
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

// StudentRepository handles rows in the etudiant table
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// List returns all students ordered by id descending
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, ine, nom, prenom, age, telephone, sexe, filiere, photo
		FROM etudiant
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s := &models.Student{}
		if err := rows.Scan(&s.ID, &s.Ine, &s.LastName, &s.FirstName, &s.Age,
			&s.Phone, &s.Sexe, &s.Filiere, &s.Photo); err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// GetByID retrieves one student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, ine, nom, prenom, age, telephone, sexe, filiere, photo
		FROM etudiant
		WHERE id = $1`,
		id).Scan(&s.ID, &s.Ine, &s.LastName, &s.FirstName, &s.Age,
		&s.Phone, &s.Sexe, &s.Filiere, &s.Photo)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error finding student: %w", err)
	}

	return s, nil
}

// Create inserts a new student row with a null photo and returns the
// assigned id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO etudiant (ine, nom, prenom, age, telephone, sexe, filiere, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
		RETURNING id`,
		student.Ine, student.LastName, student.FirstName, student.Age,
		student.Phone, student.Sexe, student.Filiere).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, etudiantIneConstraint) {
			return 0, apperrors.ErrIneAlreadyUsed
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// Update replaces all editable fields of a student row
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE etudiant
		SET ine = $1, nom = $2, prenom = $3, age = $4, telephone = $5, sexe = $6, filiere = $7, photo = $8
		WHERE id = $9`,
		student.Ine, student.LastName, student.FirstName, student.Age,
		student.Phone, student.Sexe, student.Filiere, student.Photo, student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, etudiantIneConstraint) {
			return apperrors.ErrIneAlreadyUsed
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePhoto sets the photo reference of a student row
func (r *StudentRepository) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE etudiant
		SET photo = $1
		WHERE id = $2`,
		photo, id)

	if err != nil {
		return fmt.Errorf("error updating student photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student row
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM etudiant
		WHERE id = $1`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DistinctFilieres returns the distinct set of filiere values currently
// present across student rows. Filières are not stored independently;
// this projection is recomputed on every read.
func (r *StudentRepository) DistinctFilieres(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT filiere
		FROM etudiant
		WHERE filiere <> ''
		ORDER BY filiere`)
	if err != nil {
		return nil, fmt.Errorf("error listing filieres: %w", err)
	}
	defer rows.Close()

	filieres := make([]string, 0)
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("error scanning filiere: %w", err)
		}
		filieres = append(filieres, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating filieres: %w", err)
	}

	return filieres, nil
}

// ListPhotoPaths returns every non-null photo reference, for the orphan
// file sweep.
func (r *StudentRepository) ListPhotoPaths(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT photo
		FROM etudiant
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
