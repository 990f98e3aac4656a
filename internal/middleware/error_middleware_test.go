package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", w.Body.String(), err)
	}
	return w.Code, body.Error
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid input", apperrors.NewInvalidInputError("missing fields"), 400, "missing fields"},
		{"not an image", apperrors.ErrNotAnImage, 400, "not an image"},
		{"duplicate email", apperrors.ErrEmailAlreadyUsed, 400, "email already used"},
		{"duplicate ine", apperrors.ErrIneAlreadyUsed, 400, "INE already used"},
		{"unauthorized", apperrors.NewUnauthorizedError("wrong password"), 401, "wrong password"},
		{"forbidden", apperrors.ErrForbidden, 403, "forbidden"},
		{"student not found", apperrors.ErrStudentNotFound, 404, "student not found"},
		{"user not found", apperrors.ErrUserNotFound, 404, "user not found"},
		{"unclassified", errors.New("pq: connection refused"), 500, "internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := handleError(t, tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if msg != tc.wantError {
				t.Errorf("error = %q, want %q", msg, tc.wantError)
			}
		})
	}
}

func TestHandleAPIErrorDoesNotLeakInternals(t *testing.T) {
	status, msg := handleError(t, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	if status != 500 {
		t.Fatalf("status = %d, want 500", status)
	}
	if msg != "internal server error" {
		t.Errorf("internal error text must not leak, got %q", msg)
	}
}
