package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Validator performs cheap structural checks on PDF bytes before the
// fill pipeline invests any work in them.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given size ceiling.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

var pdfHeader = []byte("%PDF-")

// ValidateBytes checks that the data is a parseable PDF within the
// configured size limit.
func (v *Validator) ValidateBytes(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("document is empty")
	}

	if v.maxFileSize > 0 && int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(data), v.maxFileSize)
	}

	if !bytes.HasPrefix(data, pdfHeader) {
		return fmt.Errorf("not a PDF document: missing %%PDF header")
	}

	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("invalid PDF document: %w", err)
	}

	return nil
}

// IsValidPDF reports whether the data passes validation.
func (v *Validator) IsValidPDF(data []byte) bool {
	return v.ValidateBytes(data) == nil
}
