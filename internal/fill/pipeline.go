package fill

import (
	"fmt"
	"log"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// fillState is the pipeline's explicit control state.
type fillState int

const (
	stateStart fillState = iota
	stateAcroForm
	stateOverlay
	stateDone
)

// Pipeline is the per-document controller: structured fill first, text
// overlay as fallback, and "unfilled" as the terminal signal that the
// caller must copy the original bytes through unchanged.
//
// A Pipeline is safe for concurrent use: it holds only read-only
// configuration, and every Fill call works on its own document copy.
type Pipeline struct {
	acroform *AcroFormStrategy
	overlay  *TextOverlayStrategy
	logger   *log.Logger
}

// NewPipeline builds a pipeline over the given mapping table. Extra
// label patterns extend the classifier's keyword lists; logger may be
// nil.
func NewPipeline(mapping Mapping, patterns map[FieldType][]string, logger *log.Logger) *Pipeline {
	classifier := NewLabelClassifier(patterns)
	return &Pipeline{
		acroform: NewAcroFormStrategy(mapping, logger),
		overlay:  NewTextOverlayStrategy(classifier, mapping, logger),
		logger:   logger,
	}
}

// Fill runs one document through the strategy state machine. The
// returned result always carries usable bytes: the filled document on
// success, the untouched input otherwise. Library panics on malformed
// input are contained here and degrade to the unfilled outcome.
func (p *Pipeline) Fill(data []byte, values ValidatedValues) (result FillResult) {
	result = FillResult{Data: data, Written: false}

	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Printf("fill: recovered from PDF library panic: %v", r)
			}
			result = FillResult{Data: data, Written: false}
		}
	}()

	if len(values) == 0 {
		return result
	}

	state := stateStart
	for state != stateDone {
		switch state {
		case stateStart:
			state = stateAcroForm

		case stateAcroForm:
			out, written, err := p.acroform.Fill(data, values)
			if err != nil {
				if p.logger != nil {
					p.logger.Printf("fill: acroform strategy failed: %v", err)
				}
				state = stateOverlay
				continue
			}
			if written {
				result = FillResult{Data: out, Written: true}
				state = stateDone
				continue
			}
			state = stateOverlay

		case stateOverlay:
			out, written, err := p.runOverlay(data, values)
			if err != nil {
				if p.logger != nil {
					p.logger.Printf("fill: overlay strategy failed: %v", err)
				}
				state = stateDone
				continue
			}
			if written {
				result = FillResult{Data: out, Written: true}
			}
			state = stateDone
		}
	}

	return result
}

func (p *Pipeline) runOverlay(data []byte, values ValidatedValues) ([]byte, bool, error) {
	doc, err := pdf.Open(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open document for overlay: %w", err)
	}
	return p.overlay.Fill(doc, values)
}
