package tika_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnovatex/platform/internal/adapter/textextractor/tika"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClient_ExtractPath(t *testing.T) {
	testFile := writeTempFile(t, "resume.txt", "Jane Doe, software engineer")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tika", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "Jane Doe, software engineer", string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Jane Doe\nsoftware engineer"))
	}))
	defer srv.Close()

	c := tika.New(srv.URL)
	got, err := c.ExtractPath(context.Background(), "resume.txt", testFile)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nsoftware engineer", got)
}

func TestClient_ExtractPathServerError(t *testing.T) {
	testFile := writeTempFile(t, "resume.pdf", "%PDF-1.4 broken")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := tika.New(srv.URL)
	_, err := c.ExtractPath(context.Background(), "resume.pdf", testFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 422")
}

func TestClient_ExtractPathMissingFile(t *testing.T) {
	c := tika.New("http://localhost:9998")
	_, err := c.ExtractPath(context.Background(), "ghost.pdf", filepath.Join(t.TempDir(), "ghost.pdf"))
	assert.Error(t, err)
}
