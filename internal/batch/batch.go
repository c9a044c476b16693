// Package batch unpacks a ZIP of PDF documents, runs each one through
// the fill pipeline in a bounded worker pool, and repacks the results.
// Documents are independent: a corrupt member degrades to a copy of
// its original bytes and never aborts the rest of the batch.
package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/docufill/pdf-form-filler/internal/fill"
	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// Output name prefixes, matching what callers downstream expect.
const (
	FilledPrefix   = "filled_"
	OriginalPrefix = "original_"
)

// Processor orchestrates one batch run. It never touches the
// field-resolution logic beyond invoking the pipeline per document.
type Processor struct {
	pipeline  *fill.Pipeline
	validator *pdf.Validator
	workers   int
	logger    *log.Logger
}

// NewProcessor creates a batch processor. workers bounds the number of
// documents processed concurrently.
func NewProcessor(pipeline *fill.Pipeline, maxFileSize int64, workers int, logger *log.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		pipeline:  pipeline,
		validator: pdf.NewValidator(maxFileSize),
		workers:   workers,
		logger:    logger,
	}
}

// entry is one PDF pulled out of the input archive.
type entry struct {
	name string
	data []byte
}

// outcome is one document's finished slot, written by exactly one
// worker.
type outcome struct {
	name string
	data []byte
}

// ProcessZip fills every PDF in the archive and returns a new ZIP.
// Filled documents are named filled_<name>; documents the pipeline
// could not fill keep their original bytes under original_<name>.
func (p *Processor) ProcessZip(ctx context.Context, zipBytes []byte, values fill.ValidatedValues) ([]byte, error) {
	entries, err := extractPDFs(zipBytes)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("archive contains no PDF documents")
	}

	// One output slot per input document; workers never share slots.
	outcomes := make([]outcome, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range entries {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			outcomes[i] = p.processOne(entries[i], values)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return packZip(outcomes)
}

// processOne runs a single document through validation and the fill
// pipeline. Any failure is terminal for this document only and yields
// the untouched original bytes.
func (p *Processor) processOne(e entry, values fill.ValidatedValues) outcome {
	if err := p.validator.ValidateBytes(e.data); err != nil {
		if p.logger != nil {
			p.logger.Printf("batch: %s failed validation, copying through: %v", e.name, err)
		}
		return outcome{name: OriginalPrefix + e.name, data: e.data}
	}

	result := p.pipeline.Fill(e.data, values)
	if !result.Written {
		if p.logger != nil {
			p.logger.Printf("batch: %s not filled, copying through", e.name)
		}
		return outcome{name: OriginalPrefix + e.name, data: e.data}
	}

	return outcome{name: FilledPrefix + e.name, data: result.Data}
}

// extractPDFs pulls every .pdf member out of the archive, flattening
// directory structure to base names.
func extractPDFs(zipBytes []byte) ([]entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var entries []entry
	seen := make(map[string]int)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		entries = append(entries, entry{name: uniqueName(seen, path.Base(f.Name)), data: data})
	}

	return entries, nil
}

// uniqueName disambiguates flattened member names: the second a.pdf in
// an archive becomes a_2.pdf, the third a_3.pdf, and so on.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if seen[name] == 1 {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for {
		candidate := fmt.Sprintf("%s_%d%s", base, seen[name], ext)
		if seen[candidate] == 0 {
			seen[candidate]++
			return candidate
		}
		seen[name]++
	}
}

// packZip writes the outcomes into a deflated archive in input order.
func packZip(outcomes []outcome) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, o := range outcomes {
		w, err := zw.Create(o.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", o.name, err)
		}
		if _, err := w.Write(o.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", o.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
