package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placeprep/placeprep-backend/internal/middleware"
	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/response"
	"github.com/placeprep/placeprep-backend/internal/service"
	"github.com/placeprep/placeprep-backend/internal/validator"
)

// ClassroomHandler handles classroom management for HODs and classroom
// membership for students.
type ClassroomHandler struct {
	classroomService *service.ClassroomService
}

// NewClassroomHandler creates a new ClassroomHandler.
func NewClassroomHandler(classroomService *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

// ─── HOD endpoints ──────────────────────────────────────────────────

// Create godoc
// POST /api/v1/hod/classrooms
func (h *ClassroomHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateClassroomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classroom, err := h.classroomService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"classroom": classroom})
}

// List godoc
// GET /api/v1/hod/classrooms
func (h *ClassroomHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classrooms, err := h.classroomService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classrooms": classrooms})
}

// Details godoc
// GET /api/v1/hod/classrooms/:classroomId
// Returns the classroom and its roster.
func (h *ClassroomHandler) Details(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	details, err := h.classroomService.Details(c.Request.Context(), classroomID, claims.UserID)
	if err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// Delete godoc
// DELETE /api/v1/hod/classrooms/:classroomId
func (h *ClassroomHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), classroomID, claims.UserID); err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// RegenerateJoinCode godoc
// POST /api/v1/hod/classrooms/:classroomId/join-code
// Replaces the classroom's join code, invalidating the old one.
func (h *ClassroomHandler) RegenerateJoinCode(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	classroom, err := h.classroomService.RegenerateJoinCode(c.Request.Context(), classroomID, claims.UserID)
	if err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classroom": classroom})
}

// RemoveStudent godoc
// DELETE /api/v1/hod/classrooms/:classroomId/students/:studentId
func (h *ClassroomHandler) RemoveStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classroomService.RemoveStudent(c.Request.Context(), classroomID, claims.UserID, studentID); err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ScheduleTest godoc
// POST /api/v1/hod/classrooms/:classroomId/tests
// Schedules a test window for the classroom.
func (h *ClassroomHandler) ScheduleTest(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ScheduleTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.classroomService.ScheduleTest(c.Request.Context(), classroomID, claims.UserID, &req)
	if err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"test": test})
}

// ListTests godoc
// GET /api/v1/hod/classrooms/:classroomId/tests
func (h *ClassroomHandler) ListTests(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tests, err := h.classroomService.ListTests(c.Request.Context(), classroomID, claims.UserID)
	if err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// ─── Student endpoints ──────────────────────────────────────────────

// Join godoc
// POST /api/v1/student/classrooms/join
// Enrolls the student by join code; the classroom batch must match.
func (h *ClassroomHandler) Join(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.JoinClassroomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classroom, err := h.classroomService.Join(c.Request.Context(), claims.UserID, claims.Batch, req.JoinCode)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrInvalidJoinCode)
		case errors.Is(err, service.ErrBatchMismatch):
			response.Fail(c, http.StatusForbidden, response.ErrBatchMismatch)
		case errors.Is(err, service.ErrAlreadyMember):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyMember)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classroom": classroom})
}

// ListMine godoc
// GET /api/v1/student/classrooms
func (h *ClassroomHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classrooms, err := h.classroomService.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classrooms": classrooms})
}

// ListTestsForStudent godoc
// GET /api/v1/student/classrooms/:classroomId/tests
func (h *ClassroomHandler) ListTestsForStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classroomID, err := uuid.Parse(c.Param("classroomId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tests, err := h.classroomService.ListTestsForStudent(c.Request.Context(), classroomID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
			return
		}
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

func failClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
