package highlight

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// HighlightedPrefix names annotated archive members.
const HighlightedPrefix = "highlighted_"

// ProcessZip annotates every PDF member of the archive and copies
// non-PDF members through untouched. A document that fails to
// highlight keeps its original bytes; only an unreadable archive is an
// error.
func (h *Highlighter) ProcessZip(zipBytes []byte, phrases []string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
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

		name := f.Name
		if strings.HasSuffix(strings.ToLower(name), ".pdf") {
			out, _, err := h.HighlightDocument(data, phrases)
			if err != nil {
				if h.logger != nil {
					h.logger.Printf("highlight: %s failed, copying original: %v", name, err)
				}
			} else {
				data = out
			}
			name = HighlightedPrefix + name
		}

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
