package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/venturelens/assessment-engine/internal/errors"
	"github.com/venturelens/assessment-engine/internal/models"
	"github.com/venturelens/assessment-engine/internal/services"
	"github.com/venturelens/assessment-engine/internal/utils"
)

// SessionHandler exposes the assessment session lifecycle over HTTP.
// This is routing glue; all logic lives in the services layer.
type SessionHandler struct {
	BaseHandler
	sessions *services.SessionService
	export   *services.ExportService
	validate *validator.Validate
}

func NewSessionHandler(sessions *services.SessionService, export *services.ExportService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
		export:      export,
		validate:    utils.NewValidator(),
	}
}

// StartSessionRequest carries the planner inputs.
type StartSessionRequest struct {
	Context models.AssessmentContext `json:"context"`
	History []models.HistoryEntry    `json:"history,omitempty"`
}

// SubmitResponseRequest carries one answer submission.
type SubmitResponseRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validate.Struct(&req.Context); err != nil {
		h.RespondWithServiceError(c, apperrors.ToValidationErrors(err))
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), req.Context, req.History)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "session started", session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "session", session)
}

// GetWorksheet handles GET /api/v1/sessions/:id/worksheet
func (h *SessionHandler) GetWorksheet(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	if session.Worksheet == nil {
		h.RespondWithError(c, http.StatusConflict, "worksheet not assembled", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "worksheet", session.Worksheet)
}

// SubmitResponse handles POST /api/v1/sessions/:id/responses
func (h *SessionHandler) SubmitResponse(c *gin.Context) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.RespondWithServiceError(c, apperrors.ToValidationErrors(err))
		return
	}

	result, err := h.sessions.Submit(c.Request.Context(), c.Param("id"), req.QuestionID, req.Answer)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "response processed", result)
}

// NextQuestion handles GET /api/v1/sessions/:id/questions/:question_id/next
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	next, err := h.sessions.NextQuestion(c.Request.Context(), c.Param("id"), c.Param("question_id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	if next == nil {
		h.RespondWithSuccess(c, http.StatusOK, "no further questions", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "next question", next)
}

// EndSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) EndSession(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context(), c.Param("id")); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "session ended", nil)
}

// ExportWorksheet handles GET /api/v1/sessions/:id/export
func (h *SessionHandler) ExportWorksheet(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	if session.Worksheet == nil {
		h.RespondWithError(c, http.StatusConflict, "worksheet not assembled", nil)
		return
	}

	data, err := h.export.ExportWorksheet(session.Worksheet)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="worksheet.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
