// Package server is the HTTP front end: it collects the flat value
// fields and an uploaded ZIP, hands them to the batch processor or the
// highlighter, and streams the resulting ZIP back as a download.
// Malformed uploads are rejected here; the fill core never sees them.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/docufill/pdf-form-filler/internal/batch"
	"github.com/docufill/pdf-form-filler/internal/config"
	"github.com/docufill/pdf-form-filler/internal/fill"
	"github.com/docufill/pdf-form-filler/internal/highlight"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// processRequest carries the flat form fields of a fill request.
type processRequest struct {
	Name    string `validate:"omitempty,max=200"`
	Email   string `validate:"omitempty,email"`
	Phone   string `validate:"omitempty,max=40"`
	Address string `validate:"omitempty,max=500"`
	EIN     string `validate:"omitempty,max=20"`
}

// Server serves the fill and highlight endpoints.
type Server struct {
	cfg         *config.Config
	processor   *batch.Processor
	highlighter *highlight.Highlighter
	validate    *validator.Validate
	logger      *log.Logger
	httpServer  *http.Server
}

// New creates a server wired to the given batch processor and
// highlighter.
func New(cfg *config.Config, processor *batch.Processor, highlighter *highlight.Highlighter, logger *log.Logger) *Server {
	return &Server{
		cfg:         cfg,
		processor:   processor,
		highlighter: highlighter,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Run starts the HTTP server and blocks until the context is canceled
// or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /process", s.handleProcess)
	mux.HandleFunc("POST /highlight", s.handleHighlight)

	s.httpServer = &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Printf("server: listening on %s", s.cfg.Address())
		}
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleProcess fills every PDF in the uploaded ZIP with the posted
// values and returns the result as a download.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req := processRequest{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
		EIN:     strings.TrimSpace(r.FormValue("ein")),
	}
	if err := s.validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("invalid input: %v", err), http.StatusBadRequest)
		return
	}

	zipBytes, err := s.readZipUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values := fill.ValidateValues(map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
		"ein":     req.EIN,
	}, s.logger)

	out, err := s.processor.ProcessZip(r.Context(), zipBytes, values)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("server: process failed: %v", err)
		}
		http.Error(w, "failed to process documents", http.StatusUnprocessableEntity)
		return
	}

	writeZipResponse(w, "processed_pdfs.zip", out)
}

// handleHighlight marks the selected phrases in every PDF of the
// uploaded ZIP.
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		http.Error(w, "upload a .zip file containing PDFs", http.StatusBadRequest)
		return
	}

	phrases := append([]string(nil), r.MultipartForm.Value["highlight_words"]...)
	phrases = append(phrases, highlight.SplitCustomPhrases(r.FormValue("custom_words"))...)
	if len(phrases) == 0 {
		http.Error(w, "select at least one phrase to highlight", http.StatusBadRequest)
		return
	}

	zipBytes, err := s.readZipUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.highlighter.ProcessZip(zipBytes, phrases)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("server: highlight failed: %v", err)
		}
		http.Error(w, "failed to highlight documents", http.StatusUnprocessableEntity)
		return
	}

	writeZipResponse(w, "highlighted_documents.zip", out)
}

// readZipUpload pulls the zipfile part out of the multipart form and
// enforces the upload ceiling and .zip extension.
func (s *Server) readZipUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		return nil, fmt.Errorf("upload a .zip file containing PDFs")
	}

	file, header, err := r.FormFile("zipfile")
	if err != nil {
		return nil, fmt.Errorf("upload a .zip file containing PDFs")
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".zip") {
		return nil, fmt.Errorf("upload a .zip file containing PDFs")
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload")
	}
	if int64(len(data)) > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("upload exceeds %d bytes", s.cfg.MaxUploadSize)
	}
	return data, nil
}

func writeZipResponse(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}
