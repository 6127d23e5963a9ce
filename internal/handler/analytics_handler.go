package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placeprep/placeprep-backend/internal/middleware"
	"github.com/placeprep/placeprep-backend/internal/response"
	"github.com/placeprep/placeprep-backend/internal/service"
)

// AnalyticsHandler serves the HOD's scheduled-test reports.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	resultService    *service.ResultService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, resultService *service.ResultService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		resultService:    resultService,
	}
}

// AnalyzeTest godoc
// GET /api/v1/hod/tests/:testId/analysis
// The attempted / not-attempted / malpracticed partition of the roster,
// plus the topper.
func (h *AnalyticsHandler) AnalyzeTest(c *gin.Context) {
	claims := middleware.GetClaims(c)

	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.analyticsService.AnalyzeTest(c.Request.Context(), testID, claims.UserID)
	if err != nil {
		failAnalyticsError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// StudentDetails godoc
// GET /api/v1/hod/sessions/:sessionId/details
// Per-question drill-down of one student's attempt on the HOD's test.
func (h *AnalyticsHandler) StudentDetails(c *gin.Context) {
	claims := middleware.GetClaims(c)

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	details, err := h.resultService.DetailsForHOD(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failAnalyticsError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

func failAnalyticsError(c *gin.Context, err error) {
	var integrityErr *service.BankIntegrityError

	switch {
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
