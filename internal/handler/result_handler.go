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

// ResultHandler handles session termination and graded result views.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Submit godoc
// POST /api/v1/student/sessions/submit
// Terminates a session through the normal student-initiated path.
func (h *ResultHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	graded, err := h.resultService.Submit(c.Request.Context(), sessionID, claims.UserID, req.Answers)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, graded)
}

// AutoSubmit godoc
// POST /api/v1/student/sessions/auto-submit
// Terminates a session through the malpractice path. The reported reason
// is recorded on the result.
func (h *ResultHandler) AutoSubmit(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.AutoSubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	graded, err := h.resultService.AutoSubmit(c.Request.Context(), sessionID, claims.UserID, req.Answers, req.Reason)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, graded)
}

// Details godoc
// GET /api/v1/student/results/:resultId
// Returns the full per-question review of one of the student's results.
func (h *ResultHandler) Details(c *gin.Context) {
	claims := middleware.GetClaims(c)

	resultID, err := uuid.Parse(c.Param("resultId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	details, err := h.resultService.Details(c.Request.Context(), resultID, claims.UserID)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// History godoc
// GET /api/v1/student/results
// Lists the student's mock results, newest first.
func (h *ResultHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)

	summaries, err := h.resultService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": summaries})
}

// failResultError maps termination domain errors onto the response envelope.
func failResultError(c *gin.Context, err error) {
	var integrityErr *service.BankIntegrityError

	switch {
	case errors.Is(err, service.ErrDuplicateSubmission):
		response.Fail(c, http.StatusForbidden, response.ErrDuplicateSubmission)
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
	case errors.As(err, &integrityErr):
		response.Fail(c, http.StatusInternalServerError, response.ErrBankIntegrity)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
