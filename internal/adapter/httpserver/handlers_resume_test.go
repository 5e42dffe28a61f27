package httpserver_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartResume(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestResumeAnalyzeUpload(t *testing.T) {
	h, _ := testHandler(t)
	token := registerAndLogin(t, h)

	body, contentType := multipartResume(t, "resume", "cv.txt", []byte("Jane Doe\nSoftware Engineer with Go experience"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"credibility_score":78`)
	assert.Contains(t, rec.Body.String(), `"fake_skills":[]`)

	rec2 := doJSON(t, h, http.MethodGet, "/api/resume/history", token, nil)
	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())
	assert.Contains(t, rec2.Body.String(), `"filename":"cv.txt"`)
	assert.Contains(t, rec2.Body.String(), `"credibility_score":78`)
}

func TestResumeAnalyzeMissingFile(t *testing.T) {
	h, _ := testHandler(t)
	token := registerAndLogin(t, h)

	body, contentType := multipartResume(t, "wrong_field", "cv.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume file required")
}

func TestResumeAnalyzeUnsupportedType(t *testing.T) {
	h, _ := testHandler(t)
	token := registerAndLogin(t, h)

	// PNG magic bytes are not an accepted resume format.
	body, contentType := multipartResume(t, "resume", "cv.png", []byte("\x89PNG\r\n\x1a\n0000"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}
