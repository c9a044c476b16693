package server

import (
	"archive/zip"
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docufill/pdf-form-filler/internal/batch"
	"github.com/docufill/pdf-form-filler/internal/config"
	"github.com/docufill/pdf-form-filler/internal/fill"
	"github.com/docufill/pdf-form-filler/internal/highlight"
)

func newTestServer() *Server {
	cfg := config.DefaultConfig()
	pipeline := fill.NewPipeline(fill.DefaultMapping(), nil, nil)
	processor := batch.NewProcessor(pipeline, cfg.MaxFileSize, 2, nil)
	return New(cfg, processor, highlight.NewHighlighter(nil), nil)
}

func makeZip(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// multipartBody builds a multipart form with the given text fields and
// an optional ZIP attachment.
func multipartBody(t *testing.T, fields map[string]string, zipName string, zipData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if zipName != "" {
		fw, err := mw.CreateFormFile("zipfile", zipName)
		require.NoError(t, err)
		_, err = fw.Write(zipData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/process")
	assert.Contains(t, rec.Body.String(), "/highlight")
}

func TestHandleProcessReturnsZip(t *testing.T) {
	s := newTestServer()
	in := makeZip(t, map[string][]byte{"doc.pdf": []byte("not really a pdf")})
	body, contentType := multipartBody(t, map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	}, "docs.zip", in)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleProcess(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "processed_pdfs.zip")

	// The unfillable document comes back under the original_ prefix.
	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, batch.OriginalPrefix+"doc.pdf", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, []byte("not really a pdf"), content)
}

func TestHandleProcessRejectsBadEmail(t *testing.T) {
	s := newTestServer()
	in := makeZip(t, map[string][]byte{"doc.pdf": []byte("fake")})
	body, contentType := multipartBody(t, map[string]string{
		"email": "not-an-email",
	}, "docs.zip", in)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleProcess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProcessRequiresZip(t *testing.T) {
	s := newTestServer()
	body, contentType := multipartBody(t, map[string]string{"name": "Jane Doe"}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleProcess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ".zip")
}

func TestHandleProcessRejectsNonZipUpload(t *testing.T) {
	s := newTestServer()
	body, contentType := multipartBody(t, map[string]string{"name": "Jane Doe"}, "docs.tar", []byte("tar data"))

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleProcess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProcessEmptyArchive(t *testing.T) {
	s := newTestServer()
	in := makeZip(t, map[string][]byte{"notes.txt": []byte("no pdfs here")})
	body, contentType := multipartBody(t, map[string]string{"name": "Jane Doe"}, "docs.zip", in)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleProcess(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleHighlightRequiresPhrases(t *testing.T) {
	s := newTestServer()
	in := makeZip(t, map[string][]byte{"doc.pdf": []byte("fake")})
	body, contentType := multipartBody(t, nil, "docs.zip", in)

	req := httptest.NewRequest(http.MethodPost, "/highlight", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleHighlight(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phrase")
}

func TestHandleHighlightReturnsZip(t *testing.T) {
	s := newTestServer()
	in := makeZip(t, map[string][]byte{"doc.pdf": []byte("fake")})
	body, contentType := multipartBody(t, map[string]string{
		"custom_words": "Notary Public, Witness",
	}, "docs.zip", in)

	req := httptest.NewRequest(http.MethodPost, "/highlight", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handleHighlight(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "highlighted_documents.zip")

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.True(t, strings.HasPrefix(zr.File[0].Name, highlight.HighlightedPrefix))
}
