package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placeprep/placeprep-backend/internal/bank"
	"github.com/placeprep/placeprep-backend/internal/middleware"
	"github.com/placeprep/placeprep-backend/internal/response"
	"github.com/placeprep/placeprep-backend/internal/service"
)

// TestHandler handles the student attempt endpoints: starting mock and
// scheduled attempts and re-fetching a session's paper.
type TestHandler struct {
	attemptService *service.AttemptService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(attemptService *service.AttemptService) *TestHandler {
	return &TestHandler{attemptService: attemptService}
}

// StartMock godoc
// POST /api/v1/student/tests/mock
// Starts a fresh mock attempt drawn from the global bank.
func (h *TestHandler) StartMock(c *gin.Context) {
	claims := middleware.GetClaims(c)

	paper, err := h.attemptService.StartMock(c.Request.Context(), claims.UserID)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, paper)
}

// StartScheduled godoc
// POST /api/v1/student/tests/scheduled/:testId/start
// Starts (or resumes) an attempt for a scheduled test within its window.
func (h *TestHandler) StartScheduled(c *gin.Context) {
	claims := middleware.GetClaims(c)

	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.attemptService.StartScheduled(c.Request.Context(), testID, claims.UserID)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, paper)
}

// GetPaper godoc
// GET /api/v1/student/sessions/:sessionId/paper
// Re-serves a session's paper to its owner.
func (h *TestHandler) GetPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.attemptService.GetPaper(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, paper)
}

// failAttemptError maps attempt domain errors onto the response envelope.
func failAttemptError(c *gin.Context, err error) {
	var bankErr *bank.InsufficientBankError
	var integrityErr *service.BankIntegrityError

	switch {
	case errors.Is(err, service.ErrNotYetOpen):
		response.Fail(c, http.StatusForbidden, response.ErrTestNotOpenYet)
	case errors.Is(err, service.ErrWindowClosed):
		response.Fail(c, http.StatusForbidden, response.ErrTestWindowClosed)
	case errors.Is(err, service.ErrNotEnrolled):
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
	case errors.As(err, &bankErr):
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrInsufficientBank, bankErr.Error())
	case errors.As(err, &integrityErr):
		response.Fail(c, http.StatusInternalServerError, response.ErrBankIntegrity)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
