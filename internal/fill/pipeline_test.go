package fill

import (
	"bytes"
	"testing"
)

func TestPipelineEmptyValuesReturnsOriginal(t *testing.T) {
	p := NewPipeline(DefaultMapping(), nil, nil)
	data := []byte("%PDF-1.4 fake")

	result := p.Fill(data, ValidatedValues{})
	if result.Written {
		t.Error("Expected no write with empty values")
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("Expected the original bytes back")
	}
}

func TestPipelineMalformedDocumentDegrades(t *testing.T) {
	p := NewPipeline(DefaultMapping(), nil, nil)
	data := []byte("not a pdf at all")
	values := ValidatedValues{FieldName: "Jane Doe"}

	// Both strategies fail on garbage input; the result must still
	// carry the untouched bytes instead of an error.
	result := p.Fill(data, values)
	if result.Written {
		t.Error("Expected no write on malformed input")
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("Expected the original bytes back")
	}
}

func TestPipelineTruncatedPDFDegrades(t *testing.T) {
	p := NewPipeline(DefaultMapping(), nil, nil)
	// A valid header with a missing body exercises the parser error
	// paths rather than the header check.
	data := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog")
	values := ValidatedValues{FieldEmail: "jane@example.com"}

	result := p.Fill(data, values)
	if result.Written {
		t.Error("Expected no write on a truncated document")
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("Expected the original bytes back")
	}
}
