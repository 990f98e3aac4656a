package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the HTTP statuses the mobile
// client expects. Uniqueness conflicts return 400, not 409; that is the
// existing client contract. Unclassified errors never leak their text.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrNotAnImage):
		c.JSON(400, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrEmailAlreadyUsed),
		errors.Is(err, apperrors.ErrIneAlreadyUsed):
		c.JSON(400, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(401, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(403, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(404, dto.NewErrorResponse(err.Error()))

	default:
		c.JSON(500, dto.NewErrorResponse("internal server error"))
	}
}
