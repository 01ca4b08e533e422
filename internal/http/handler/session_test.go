package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/model"
	"studybuddy/internal/service"
	serviceMocks "studybuddy/internal/service/mocks"
)

func TestSessions_ListAndCreate(t *testing.T) {
	svc := new(serviceMocks.MockSessionService)
	v := newValidator(t)
	app := newApp()
	app.Get("/sessions", asUser("u-1"), ListSessions(svc))
	app.Post("/sessions", asUser("u-1"), CreateSession(svc, v))

	svc.On("List", mock.Anything, "u-1").Return(nil, nil).Once()
	svc.On("Create", mock.Anything, "u-1", "").Return(&model.StudySession{ID: "s-1", Topic: "general"}, nil).Once()
	svc.On("Create", mock.Anything, "u-1", "Go").Return(&model.StudySession{ID: "s-2", Topic: "Go"}, nil).Once()

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))

	resp = do(t, app, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "general", decodeBody[model.StudySession](t, resp).Topic)

	resp = do(t, app, jsonRequest(http.MethodPost, "/sessions", `{"topic":"Go"}`))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "s-2", decodeBody[model.StudySession](t, resp).ID)

	svc.AssertExpectations(t)
}

func TestEndSession(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *serviceMocks.MockSessionService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "with confidence",
			body: `{"confidenceLevel":8}`,
			setupMock: func(m *serviceMocks.MockSessionService) {
				m.On("End", mock.Anything, "u-1", "s-1", mock.MatchedBy(func(c *int) bool { return c != nil && *c == 8 })).
					Return(&model.StudySession{ID: "s-1", Duration: 30, ConfidenceLevel: 8}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "without body",
			setupMock: func(m *serviceMocks.MockSessionService) {
				m.On("End", mock.Anything, "u-1", "s-1", (*int)(nil)).
					Return(&model.StudySession{ID: "s-1", ConfidenceLevel: 5}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "confidence out of range",
			body:       `{"confidenceLevel":11}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name: "already ended",
			body: `{}`,
			setupMock: func(m *serviceMocks.MockSessionService) {
				m.On("End", mock.Anything, "u-1", "s-1", mock.Anything).Return(nil, service.ErrSessionEnded).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "SESSION_ALREADY_ENDED",
		},
		{
			name: "not found",
			body: `{}`,
			setupMock: func(m *serviceMocks.MockSessionService) {
				m.On("End", mock.Anything, "u-1", "s-1", mock.Anything).Return(nil, service.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMocks.MockSessionService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			app := newApp()
			app.Put("/sessions/:id/end", asUser("u-1"), EndSession(svc, newValidator(t)))

			resp := do(t, app, jsonRequest(http.MethodPut, "/sessions/s-1/end", tt.body))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody[errorPayload](t, resp).Error.Code)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionQuestion(t *testing.T) {
	sessions := new(serviceMocks.MockSessionService)
	assistant := new(serviceMocks.MockAssistantService)
	app := newApp()
	app.Post("/sessions/:id/question", asUser("u-1"), SessionQuestion(sessions, assistant, newValidator(t)))

	t.Run("counts without a question", func(t *testing.T) {
		sessions.On("CountQuestion", mock.Anything, "u-1", "s-1").Return(nil).Once()

		resp := do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/s-1/question", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]string{"message": "Question counted"}, decodeBody[map[string]string](t, resp))
	})

	t.Run("answers a question", func(t *testing.T) {
		assistant.On("Ask", mock.Anything, "u-1", "s-1", "What is a slice?").Return("A view over an array.", nil).Once()

		resp := do(t, app, jsonRequest(http.MethodPost, "/sessions/s-1/question", `{"question":"What is a slice?"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		assert.Equal(t, "Question answered", body["message"])
		assert.Equal(t, "A view over an array.", body["answer"])
	})

	t.Run("unknown session", func(t *testing.T) {
		sessions.On("CountQuestion", mock.Anything, "u-1", "s-9").Return(service.ErrNotFound).Once()

		resp := do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/s-9/question", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	sessions.AssertExpectations(t)
	assistant.AssertExpectations(t)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadMaterial(t *testing.T) {
	svc := new(serviceMocks.MockSessionService)
	app := newApp()
	app.Post("/sessions/:id/materials", asUser("u-1"), UploadMaterial(svc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody(t, "file", "notes.txt", "hello world")
		svc.On("AttachMaterial", mock.Anything, "u-1", "s-1", mock.MatchedBy(func(in service.MaterialUpload) bool {
			return in.Filename == "notes.txt" && in.Size == 11 && in.Reader != nil
		})).Return(&model.StudySession{ID: "s-1", MaterialsCovered: []string{"materials/s-1/x.txt"}}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/materials", body)
		req.Header.Set("Content-Type", ct)
		resp := do(t, app, req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Len(t, decodeBody[model.StudySession](t, resp).MaterialsCovered, 1)
	})

	t.Run("no file", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/s-1/materials", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeBody[errorPayload](t, resp).Error.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		body, ct := multipartBody(t, "file", "notes.txt", "hello")
		svc.On("AttachMaterial", mock.Anything, "u-1", "s-1", mock.Anything).Return(nil, service.ErrStorageDisabled).Once()

		req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/materials", body)
		req.Header.Set("Content-Type", ct)
		resp := do(t, app, req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "STORAGE_DISABLED", decodeBody[errorPayload](t, resp).Error.Code)
	})

	t.Run("upload failure", func(t *testing.T) {
		body, ct := multipartBody(t, "file", "notes.txt", "hello")
		svc.On("AttachMaterial", mock.Anything, "u-1", "s-1", mock.Anything).Return(nil, errors.New("s3 down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/materials", body)
		req.Header.Set("Content-Type", ct)
		resp := do(t, app, req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	svc.AssertExpectations(t)
}

func TestMaterialURL(t *testing.T) {
	svc := new(serviceMocks.MockSessionService)
	app := newApp()
	app.Get("/sessions/:id/materials/url", asUser("u-1"), MaterialURL(svc))

	svc.On("MaterialURL", mock.Anything, "u-1", "s-1", "materials/s-1/a.pdf").
		Return("https://objects.local/a.pdf", 15*time.Minute, nil).Once()

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/s-1/materials/url?key=materials/s-1/a.pdf", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "https://objects.local/a.pdf", body["url"])
	assert.EqualValues(t, 900, body["expires_in"])

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/s-1/materials/url", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "KEY_REQUIRED", decodeBody[errorPayload](t, resp).Error.Code)

	svc.AssertExpectations(t)
}
