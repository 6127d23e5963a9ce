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

// QuestionHandler handles bank management. HOD routes operate on the
// HOD's private bank; admin routes operate on the shared global bank.
// The scope always comes from the verified principal, never the payload.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ─── HOD private bank ───────────────────────────────────────────────

// Add godoc
// POST /api/v1/hod/questions
func (h *QuestionHandler) Add(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Add(c.Request.Context(), model.PrivateScope(claims.UserID), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// List godoc
// GET /api/v1/hod/questions
func (h *QuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	questions, err := h.questionService.List(c.Request.Context(), model.PrivateScope(claims.UserID))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Counts godoc
// GET /api/v1/hod/questions/counts
// Per-section counts of the HOD's private bank, for checking whether a
// full paper can be drawn before scheduling a test.
func (h *QuestionHandler) Counts(c *gin.Context) {
	claims := middleware.GetClaims(c)

	counts, err := h.questionService.Counts(c.Request.Context(), model.PrivateScope(claims.UserID))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// Delete godoc
// DELETE /api/v1/hod/questions/:questionId
func (h *QuestionHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), model.PrivateScope(claims.UserID), questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ─── Admin global bank ──────────────────────────────────────────────

// GlobalCounts godoc
// GET /api/v1/admin/questions/counts
func (h *QuestionHandler) GlobalCounts(c *gin.Context) {
	counts, err := h.questionService.Counts(c.Request.Context(), model.GlobalScope)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// GlobalList godoc
// GET /api/v1/admin/questions
func (h *QuestionHandler) GlobalList(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context(), model.GlobalScope)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// GlobalReplace godoc
// PUT /api/v1/admin/questions
// Bulk-replaces the entire global bank.
func (h *QuestionHandler) GlobalReplace(c *gin.Context) {
	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	n, err := h.questionService.Replace(c.Request.Context(), model.GlobalScope, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loaded": n})
}
