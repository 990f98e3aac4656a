package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/mdiallo/gestion-etudiants/internal/app/models"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/app/repositories"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/filestorage"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// StudentService defines the interface for student record operations
type StudentService interface {
	List(ctx context.Context, baseURL string) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id int64, baseURL string) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest, baseURL string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id int64) error
	ReplacePhoto(ctx context.Context, id int64, fileHeader *multipart.FileHeader, baseURL string) (*dto.PhotoResponse, error)
	Filieres(ctx context.Context) ([]string, error)
	SweepOrphanPhotos(ctx context.Context, grace time.Duration) (int, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	photos      filestorage.PhotoStorage
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	photos filestorage.PhotoStorage,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		photos:      photos,
		logger:      logger,
	}
}

// toResponse shapes a record for output, rewriting the stored relative
// photo path into an absolute URL for the current request's host.
func (s *studentServiceImpl) toResponse(student *models.Student, baseURL string) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:        student.ID,
		Ine:       student.Ine,
		LastName:  student.LastName,
		FirstName: student.FirstName,
		Age:       student.Age,
		Phone:     student.Phone,
		Sexe:      student.Sexe,
		Filiere:   student.Filiere,
	}
	if student.Photo != nil && *student.Photo != "" {
		url := s.photos.PublicURL(baseURL, *student.Photo)
		resp.Photo = &url
	}
	return resp
}

// validateStudent enforces the data-integrity rules shared by create and
// update. Optional fields are validated only when set.
func validateStudent(student *models.Student) error {
	if student.Ine == "" || student.LastName == "" || student.FirstName == "" {
		return apperrors.NewInvalidInputError("missing fields")
	}
	if !validation.IsIneValid(student.Ine) {
		return apperrors.NewInvalidInputError("invalid INE")
	}
	if !validation.IsNameValid(student.LastName) {
		return apperrors.NewInvalidInputError("invalid last name")
	}
	if !validation.IsNameValid(student.FirstName) {
		return apperrors.NewInvalidInputError("invalid first name")
	}
	if student.Age != 0 && !validation.IsAgeValid(student.Age) {
		return apperrors.NewInvalidInputError("invalid age")
	}
	if student.Phone != "" && !validation.IsPhoneValid(student.Phone) {
		return apperrors.NewInvalidInputError("invalid phone number")
	}
	if student.Sexe != "" && !validation.IsSexeValid(student.Sexe) {
		return apperrors.NewInvalidInputError("invalid sex")
	}
	if student.Filiere != "" && !validation.IsFiliereValid(student.Filiere) {
		return apperrors.NewInvalidInputError("invalid filiere")
	}
	return nil
}

// List returns all students ordered by id descending
func (s *studentServiceImpl) List(ctx context.Context, baseURL string) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, s.toResponse(st, baseURL))
	}
	return responses, nil
}

// GetByID returns one student
func (s *studentServiceImpl) GetByID(ctx context.Context, id int64, baseURL string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(student, baseURL)
	return &resp, nil
}

// Create validates and inserts a new student record. The photo is not
// accepted here; it is attached via ReplacePhoto using the returned id.
func (s *studentServiceImpl) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := &models.Student{
		Ine:       req.Ine,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Age:       req.Age,
		Phone:     req.Phone,
		Sexe:      req.Sexe,
		Filiere:   req.Filiere,
	}

	if err := validateStudent(student); err != nil {
		return nil, err
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	student.ID = id

	s.logger.Info().Int64("id", id).Str("ine", student.Ine).Msg("Student created")

	resp := s.toResponse(student, "")
	return &resp, nil
}

// Update merges a patch against the record read fresh from the store,
// validates the merged result and replaces the row. The photo field of
// the patch is a relative-path string; file replacement goes through
// ReplacePhoto.
func (s *studentServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest, baseURL string) (*dto.StudentResponse, error) {
	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Ine != nil {
		current.Ine = *req.Ine
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.Age != nil {
		current.Age = *req.Age
	}
	if req.Phone != nil {
		current.Phone = *req.Phone
	}
	if req.Sexe != nil {
		current.Sexe = *req.Sexe
	}
	if req.Filiere != nil {
		current.Filiere = *req.Filiere
	}
	if req.Photo != nil {
		current.Photo = req.Photo
	}

	if err := validateStudent(current); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Msg("Student updated")

	resp := s.toResponse(current, baseURL)
	return &resp, nil
}

// Delete removes a student row and releases its photo file. The row is
// deleted first so a failure between the two steps leaves an orphan
// file, never a dangling reference.
func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if student.Photo != nil && *student.Photo != "" {
		if err := s.photos.DeletePhoto(*student.Photo); err != nil {
			s.logger.Warn().Err(err).Int64("id", id).Str("photo", *student.Photo).
				Msg("Failed to delete photo of removed student")
		}
	}

	s.logger.Info().Int64("id", id).Msg("Student deleted")
	return nil
}

// ReplacePhoto sets or replaces a student's photo. Order of operations
// preserves the at-most-one-current-photo invariant: the new file is
// written first under a collision-resistant name, the reference update
// is the commit point, and only then is the previous file removed.
// A failed removal of the old file is logged and swallowed; an orphan
// file is less harmful than a dangling reference.
func (s *studentServiceImpl) ReplacePhoto(ctx context.Context, id int64, fileHeader *multipart.FileHeader, baseURL string) (*dto.PhotoResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.ErrNotAnImage
	}

	newPath, err := s.photos.SavePhoto(id, fileHeader)
	if err != nil {
		return nil, fmt.Errorf("error storing photo: %w", err)
	}

	previous := student.Photo

	if err := s.studentRepo.UpdatePhoto(ctx, id, newPath); err != nil {
		// The reference never committed; the new file must not stay.
		if delErr := s.photos.DeletePhoto(newPath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("photo", newPath).Msg("Failed to clean up unreferenced photo")
		}
		return nil, err
	}

	if previous != nil && *previous != "" && *previous != newPath {
		if err := s.photos.DeletePhoto(*previous); err != nil {
			s.logger.Warn().Err(err).Int64("id", id).Str("photo", *previous).
				Msg("Failed to delete replaced photo")
		}
	}

	s.logger.Info().Int64("id", id).Str("photo", newPath).Msg("Student photo replaced")

	return &dto.PhotoResponse{
		ID:    id,
		Photo: s.photos.PublicURL(baseURL, newPath),
	}, nil
}

// Filieres returns the distinct program values currently present
func (s *studentServiceImpl) Filieres(ctx context.Context) ([]string, error) {
	return s.studentRepo.DistinctFilieres(ctx)
}

// SweepOrphanPhotos removes photo files no record references. Files
// younger than grace are kept, so an in-flight replacement is never
// swept between its file write and its reference commit.
func (s *studentServiceImpl) SweepOrphanPhotos(ctx context.Context, grace time.Duration) (int, error) {
	studentPaths, err := s.studentRepo.ListPhotoPaths(ctx)
	if err != nil {
		return 0, err
	}
	userPaths, err := s.userRepo.ListPhotoPaths(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(studentPaths)+len(userPaths))
	for _, p := range studentPaths {
		referenced[p] = struct{}{}
	}
	for _, p := range userPaths {
		referenced[p] = struct{}{}
	}

	return s.photos.SweepOrphans(referenced, grace)
}
