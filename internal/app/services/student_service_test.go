package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdiallo/gestion-etudiants/internal/app/models"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/filestorage"
)

// fakeStudentRepo is an in-memory IStudentRepository
type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) (int64, error) {
	for _, s := range r.students {
		if s.Ine == student.Ine {
			return 0, apperrors.ErrIneAlreadyUsed
		}
	}
	id := r.nextID
	r.nextID++
	cp := *student
	cp.ID = id
	cp.Photo = nil
	r.students[id] = &cp
	return id, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for id, s := range r.students {
		if id != student.ID && s.Ine == student.Ine {
			return apperrors.ErrIneAlreadyUsed
		}
	}
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Photo = &photo
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) DistinctFilieres(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, s := range r.students {
		if s.Filiere != "" {
			seen[s.Filiere] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeStudentRepo) ListPhotoPaths(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	for _, s := range r.students {
		if s.Photo != nil {
			out = append(out, *s.Photo)
		}
	}
	return out, nil
}

// fakeUserRepo implements only what the student service touches
type fakeUserRepo struct {
	photoPaths []string
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, lastName, firstName, email string, photo *string) error {
	return errors.New("not implemented")
}

func (r *fakeUserRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	return errors.New("not implemented")
}

func (r *fakeUserRepo) ListPhotoPaths(ctx context.Context) ([]string, error) {
	return r.photoPaths, nil
}

func newTestStudentService(t *testing.T) (StudentService, *fakeStudentRepo, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := filestorage.NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, &fakeUserRepo{}, store, zerolog.Nop())
	return svc, repo, dir
}

func imageFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["photo"][0]
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestCreateThenGet(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine:       "N12345678901",
		LastName:  "Diallo",
		FirstName: "Mamadou",
		Age:       22,
		Phone:     "771234567",
		Sexe:      "M",
		Filiere:   "Informatique",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Photo != nil {
		t.Error("new student must have no photo")
	}

	got, err := svc.GetByID(ctx, created.ID, "http://localhost:3000")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Ine != "N12345678901" || got.LastName != "Diallo" || got.FirstName != "Mamadou" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Age != 22 || got.Phone != "771234567" || got.Sexe != "M" || got.Filiere != "Informatique" {
		t.Errorf("optional fields mismatch: %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateStudentRequest
	}{
		{"missing ine", dto.CreateStudentRequest{LastName: "Diallo", FirstName: "Mamadou"}},
		{"bad ine", dto.CreateStudentRequest{Ine: "X12345678901", LastName: "Diallo", FirstName: "Mamadou"}},
		{"bad name", dto.CreateStudentRequest{Ine: "N12345678901", LastName: "D3", FirstName: "Mamadou"}},
		{"bad age", dto.CreateStudentRequest{Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou", Age: 7}},
		{"bad phone", dto.CreateStudentRequest{Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou", Phone: "12"}},
		{"bad sexe", dto.CreateStudentRequest{Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou", Sexe: "X"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.req)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateDuplicateIne(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	req := dto.CreateStudentRequest{Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou"}
	if _, err := svc.Create(ctx, &req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	req.LastName = "Ndiaye"
	_, err := svc.Create(ctx, &req)
	if !errors.Is(err, apperrors.ErrIneAlreadyUsed) {
		t.Fatalf("expected ErrIneAlreadyUsed, got %v", err)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
		Age: 22, Filiere: "Informatique",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateStudentRequest{
		Age:     intPtr(23),
		Filiere: strPtr("Mathématiques"),
	}, "")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Age != 23 || updated.Filiere != "Mathématiques" {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Ine != "N12345678901" || updated.LastName != "Diallo" {
		t.Errorf("untouched fields must survive the patch: %+v", updated)
	}
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(ctx, created.ID, &dto.UpdateStudentRequest{Ine: strPtr("bogus")}, "")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// The stored record must be unchanged
	got, err := svc.GetByID(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Ine != "N12345678901" {
		t.Errorf("record mutated by rejected patch: %+v", got)
	}
}

func TestUpdateMissingStudent(t *testing.T) {
	svc, _, _ := newTestStudentService(t)

	_, err := svc.Update(context.Background(), 999, &dto.UpdateStudentRequest{Age: intPtr(30)}, "")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestReplacePhoto(t *testing.T) {
	svc, repo, dir := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, err := svc.ReplacePhoto(ctx, created.ID, imageFileHeader(t, "a.jpg", "image/jpeg", []byte("one")), "http://localhost:3000")
	if err != nil {
		t.Fatalf("first ReplacePhoto failed: %v", err)
	}
	if first.ID != created.ID {
		t.Errorf("response id = %d, want %d", first.ID, created.ID)
	}

	time.Sleep(2 * time.Millisecond)
	second, err := svc.ReplacePhoto(ctx, created.ID, imageFileHeader(t, "b.jpg", "image/jpeg", []byte("two")), "http://localhost:3000")
	if err != nil {
		t.Fatalf("second ReplacePhoto failed: %v", err)
	}
	if second.Photo == first.Photo {
		t.Error("replacement must produce a new photo path")
	}

	// Exactly one file remains on disk, the one the record references
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 photo file after replacement, got %d", len(entries))
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Photo == nil || filepath.Base(*stored.Photo) != entries[0].Name() {
		t.Errorf("surviving file %q does not match stored reference %v", entries[0].Name(), stored.Photo)
	}
}

func TestReplacePhotoRejectsNonImage(t *testing.T) {
	svc, _, dir := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.ReplacePhoto(ctx, created.ID, imageFileHeader(t, "notes.pdf", "application/pdf", []byte("pdf")), "")
	if !errors.Is(err, apperrors.ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected upload must not leave files, found %d", len(entries))
	}
}

func TestReplacePhotoMissingStudent(t *testing.T) {
	svc, _, _ := newTestStudentService(t)

	_, err := svc.ReplacePhoto(context.Background(), 999, imageFileHeader(t, "a.jpg", "image/jpeg", []byte("one")), "")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestDeleteRemovesPhotoFile(t *testing.T) {
	svc, _, dir := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.ReplacePhoto(ctx, created.ID, imageFileHeader(t, "a.jpg", "image/jpeg", []byte("one")), ""); err != nil {
		t.Fatalf("ReplacePhoto failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.GetByID(ctx, created.ID, ""); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound after delete, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("photo file must be released with the record, found %d files", len(entries))
	}
}

func TestDeleteMissingStudent(t *testing.T) {
	svc, _, _ := newTestStudentService(t)

	err := svc.Delete(context.Background(), 999)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestFilieres(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	seed := []dto.CreateStudentRequest{
		{Ine: "N11111111111", LastName: "Diallo", FirstName: "Mamadou", Filiere: "Informatique"},
		{Ine: "N22222222222", LastName: "Ndiaye", FirstName: "Awa", Filiere: "Mathématiques"},
		{Ine: "N33333333333", LastName: "Sow", FirstName: "Fatou", Filiere: "Informatique"},
		{Ine: "N44444444444", LastName: "Ba", FirstName: "Oumar"},
	}
	for i := range seed {
		if _, err := svc.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	filieres, err := svc.Filieres(ctx)
	if err != nil {
		t.Fatalf("Filieres failed: %v", err)
	}

	want := []string{"Informatique", "Mathématiques"}
	if len(filieres) != len(want) {
		t.Fatalf("Filieres = %v, want %v", filieres, want)
	}
	for i := range want {
		if filieres[i] != want[i] {
			t.Errorf("Filieres[%d] = %q, want %q", i, filieres[i], want[i])
		}
	}
}

func TestListOrder(t *testing.T) {
	svc, _, _ := newTestStudentService(t)
	ctx := context.Background()

	for _, ine := range []string{"N11111111111", "N22222222222"} {
		if _, err := svc.Create(ctx, &dto.CreateStudentRequest{Ine: ine, LastName: "Diallo", FirstName: "Mamadou"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	students, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	if students[0].ID < students[1].ID {
		t.Error("expected newest first")
	}
}

func TestSweepOrphanPhotos(t *testing.T) {
	svc, _, dir := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStudentRequest{
		Ine: "N12345678901", LastName: "Diallo", FirstName: "Mamadou",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.ReplacePhoto(ctx, created.ID, imageFileHeader(t, "a.jpg", "image/jpeg", []byte("one")), ""); err != nil {
		t.Fatalf("ReplacePhoto failed: %v", err)
	}

	// Plant an orphan and age everything past the grace cutoff
	orphanPath := filepath.Join(dir, "photo_999_1.jpg")
	if err := os.WriteFile(orphanPath, []byte("orphan"), 0o644); err != nil {
		t.Fatalf("failed to plant orphan: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if err := os.Chtimes(filepath.Join(dir, e.Name()), old, old); err != nil {
			t.Fatalf("failed to age file: %v", err)
		}
	}

	removed, err := svc.SweepOrphanPhotos(ctx, time.Hour)
	if err != nil {
		t.Fatalf("SweepOrphanPhotos failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 orphan removed, got %d", removed)
	}
	if _, err := os.Stat(orphanPath); !os.IsNotExist(err) {
		t.Error("orphan should be gone")
	}

	got, err := svc.GetByID(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Photo == nil {
		t.Fatal("referenced photo must survive the sweep")
	}
}
