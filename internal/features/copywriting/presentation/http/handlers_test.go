package http

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sangbangcopy/backend/internal/features/copywriting/application"
	"sangbangcopy/backend/internal/features/copywriting/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generationServiceStub struct {
	generateFn func(req application.GenerateRequest) (*domain.CopySession, error)
	session    *domain.CopySession
}

func (s *generationServiceStub) Generate(_ context.Context, req application.GenerateRequest) (*domain.CopySession, error) {
	if s.generateFn != nil {
		return s.generateFn(req)
	}
	return s.session, nil
}

func (s *generationServiceStub) RegenerateMainTitle(_ context.Context, sessionID string) (*domain.CopySession, error) {
	if s.session == nil || s.session.ID != sessionID {
		return nil, application.ErrSessionNotFound
	}
	return s.session, nil
}

func (s *generationServiceStub) RegenerateSectionTitle(_ context.Context, sessionID string, index int) (*domain.CopySession, error) {
	if s.session == nil || s.session.ID != sessionID {
		return nil, application.ErrSessionNotFound
	}
	if index < 0 || index >= len(s.session.Korean.Sections) {
		return nil, application.ErrSectionOutOfRange
	}
	return s.session, nil
}

func (s *generationServiceStub) GetSession(sessionID string) (*domain.CopySession, error) {
	if s.session == nil || s.session.ID != sessionID {
		return nil, application.ErrSessionNotFound
	}
	return s.session, nil
}

func sampleSession() *domain.CopySession {
	return &domain.CopySession{
		ID: "session-1",
		Korean: &domain.GeneratedCopy{
			MainTitle: "나전칠기 보석함",
			Sections:  []domain.CopySection{{Title: "소개", Content: "내용"}},
		},
		English: &domain.GeneratedCopy{
			MainTitle: "Najeonchilgi Jewelry Box",
			Sections:  []domain.CopySection{{Title: "Intro", Content: "Content"}},
		},
	}
}

func newRouter(svc application.GenerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewCopyHandler(svc)
	r.POST("/api/copy/generate", handler.GenerateHandler)
	r.GET("/api/copy/sessions/:id", handler.GetSessionHandler)
	r.POST("/api/copy/sessions/:id/title/regenerate", handler.RegenerateMainTitleHandler)
	r.POST("/api/copy/sessions/:id/sections/:index/title/regenerate", handler.RegenerateSectionTitleHandler)
	r.GET("/api/copy/sessions/:id/export", handler.ExportHandler)
	return r
}

func TestGenerateHandlerFormBinding(t *testing.T) {
	var got application.GenerateRequest
	stub := &generationServiceStub{
		generateFn: func(req application.GenerateRequest) (*domain.CopySession, error) {
			got = req
			return sampleSession(), nil
		},
	}
	r := newRouter(stub)

	form := url.Values{
		"input_type":        {"text"},
		"text":              {"고급 나전칠기 보석함"},
		"keyword1":          {"나전칠기"},
		"keyword3":          {"자개"},
		"brief_description": {"장인이 만든 보석함"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/copy/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.InputText, got.Input.Type)
	assert.Equal(t, "고급 나전칠기 보석함", got.Input.Text)
	assert.Equal(t, []string{"나전칠기", "", "자개"}, got.RequiredKeywords, "all three keyword slots pass through")
	assert.Equal(t, "장인이 만든 보석함", got.BriefDescription)
	assert.Contains(t, w.Body.String(), "나전칠기 보석함")
}

func TestGenerateHandlerMultipartImages(t *testing.T) {
	var got application.GenerateRequest
	stub := &generationServiceStub{
		generateFn: func(req application.GenerateRequest) (*domain.CopySession, error) {
			got = req
			return sampleSession(), nil
		},
	}
	r := newRouter(stub)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("input_type", "images"))
	require.NoError(t, mw.WriteField("keyword1", "보석함"))
	for _, name := range []string{"a.png", "b.png"} {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/copy/generate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.InputImages, got.Input.Type)
	require.Len(t, got.Input.Images, 2)
	assert.Equal(t, []byte("fake image bytes"), got.Input.Images[0].Data)
}

func TestGenerateHandlerValidationError(t *testing.T) {
	stub := &generationServiceStub{
		generateFn: func(application.GenerateRequest) (*domain.CopySession, error) {
			return nil, application.ErrMissingFirstKeyword
		},
	}
	r := newRouter(stub)

	form := url.Values{"input_type": {"text"}}
	req := httptest.NewRequest(http.MethodPost, "/api/copy/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "첫 번째 필수 단어는 반드시 입력해야 합니다.")
}

func TestGenerateHandlerUpstreamError(t *testing.T) {
	stub := &generationServiceStub{
		generateFn: func(application.GenerateRequest) (*domain.CopySession, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	r := newRouter(stub)

	form := url.Values{"input_type": {"text"}, "text": {"텍스트"}, "keyword1": {"자개"}}
	req := httptest.NewRequest(http.MethodPost, "/api/copy/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate copy")
}

func TestSessionHandlers(t *testing.T) {
	stub := &generationServiceStub{session: sampleSession()}
	r := newRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/copy/sessions/session-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/copy/sessions/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/copy/sessions/session-1/title/regenerate", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/copy/sessions/session-1/sections/0/title/regenerate", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/copy/sessions/session-1/sections/9/title/regenerate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/copy/sessions/session-1/sections/abc/title/regenerate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler(t *testing.T) {
	stub := &generationServiceStub{session: sampleSession()}
	r := newRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/copy/sessions/session-1/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "나전칠기 보석함\n\n소개\n내용", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/copy/sessions/session-1/export?lang=en", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Najeonchilgi Jewelry Box\n\nIntro\nContent", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/copy/sessions/session-1/export?lang=fr", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
