// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/app/services"
	"github.com/mdiallo/gestion-etudiants/internal/middleware"
	"github.com/rs/zerolog"
)

// StudentController handles student record operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// requestBaseURL derives scheme://host from the current request, for
// photo URL materialization.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// parseID parses a path id, rejecting anything that is not a
// well-formed positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}

// List returns all students
// @Summary List students
// @Description Returns all student records ordered by id descending; photo fields are absolute URLs
// @Tags etudiants
// @Produce json
// @Success 200 {array} dto.StudentResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /etudiants [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context(), requestBaseURL(ctx))
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetByID returns one student
// @Summary Get a student
// @Tags etudiants
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /etudiants/{id} [get]
func (c *StudentController) GetByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id, requestBaseURL(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Create adds a student record
// @Summary Create a student
// @Description Creates a student record. The photo is not accepted here; attach it afterwards via the photo endpoint.
// @Tags etudiants
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student fields"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid fields or INE already used"
// @Router /etudiants [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("ine", req.Ine).Msg("Failed to create student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// Update replaces a student's editable fields
// @Summary Update a student
// @Description Patches a student record; absent fields keep their value. The photo field is a relative path, not an upload.
// @Tags etudiants
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /etudiants/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), id, &req, requestBaseURL(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Delete removes a student and its photo file
// @Summary Delete a student
// @Tags etudiants
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /etudiants/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "deleted"})
}

// ReplacePhoto sets or replaces a student's photo
// @Summary Set or replace a student photo
// @Description Accepts a multipart image upload and replaces the student's current photo
// @Tags etudiants
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.PhotoResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or non-image payload"
// @Failure 404 {object} dto.ErrorResponse
// @Router /etudiants/{id}/photo [put]
func (c *StudentController) ReplacePhoto(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("missing photo"))
		return
	}

	resp, err := c.studentService.ReplacePhoto(ctx.Request.Context(), id, fileHeader, requestBaseURL(ctx))
	if err != nil {
		c.logger.Warn().Err(err).Int64("id", id).Msg("Failed to replace photo")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Filieres returns the distinct program values
// @Summary List filieres
// @Description Returns the distinct filiere values present across student records
// @Tags filieres
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /filieres [get]
func (c *StudentController) Filieres(ctx *gin.Context) {
	filieres, err := c.studentService.Filieres(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list filieres")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, filieres)
}
