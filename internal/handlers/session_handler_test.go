package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/events"
	"github.com/venturelens/assessment-engine/internal/models"
	"github.com/venturelens/assessment-engine/internal/services"
	"github.com/venturelens/assessment-engine/internal/store"
	"github.com/venturelens/assessment-engine/internal/utils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	slogger := utils.ToSlogLogger(logger)

	sessionService := services.NewSessionService(
		services.NewStrategyPlanner(slogger),
		services.NewWorksheetAssembler(catalog.DefaultBank(), slogger),
		services.NewAdaptationController(services.NewResponseScorer(slogger), slogger),
		store.NewMemoryStore(),
		events.NewMockEventPublisher(slogger),
		slogger,
	)
	handler := NewSessionHandler(sessionService, services.NewExportService(slogger), logger)
	return SetupRouter(handler, logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func startSession(t *testing.T, router *gin.Engine) (string, *models.Worksheet) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", StartSessionRequest{
		Context: models.AssessmentContext{
			CompanyStage: models.StageSeed,
			Industry:     models.IndustryB2BSaaS,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.AssessmentSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	require.NotNil(t, resp.Data.Worksheet)
	return resp.Data.ID, resp.Data.Worksheet
}

func TestSessionEndpoints_Lifecycle(t *testing.T) {
	router := newTestRouter(t)
	sessionID, worksheet := startSession(t, router)

	t.Run("get session", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("get worksheet", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID+"/worksheet", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data models.Worksheet `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, worksheet.ID, resp.Data.ID)
		assert.Len(t, resp.Data.Questions, len(worksheet.Questions))
	})

	t.Run("submit response", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/responses", SubmitResponseRequest{
			QuestionID: worksheet.Questions[0].ID,
			Answer:     "Our dispatch managers lose six hours every week reconciling delivery exceptions across three separate tools.",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data models.ProcessResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Data.Score)
		assert.Positive(t, resp.Data.Score.Score)
	})

	t.Run("next question", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/sessions/%s/questions/%s/next", sessionID, worksheet.Questions[0].ID)
		w := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data *models.Question `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Data)
		assert.Equal(t, worksheet.Questions[1].ID, resp.Data.ID)
	})

	t.Run("export worksheet", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID+"/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "worksheet.xlsx")
		assert.NotEmpty(t, w.Body.Bytes())
	})

	t.Run("end session", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionEndpoints_Validation(t *testing.T) {
	router := newTestRouter(t)

	t.Run("invalid industry is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", StartSessionRequest{
			Context: models.AssessmentContext{Industry: "crypto"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "industry")
	})

	t.Run("missing question id is rejected", func(t *testing.T) {
		sessionID, _ := startSession(t, router)
		w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/responses", SubmitResponseRequest{
			Answer: "an answer with no question",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionEndpoints_UnknownSession(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/missing/responses", SubmitResponseRequest{
		QuestionID: "q-1",
		Answer:     "answer",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
