package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// TextStamp places one string at an absolute position on a page.
// Coordinates are PDF user space: X/Y locate the lower-left corner of
// the stamped text, measured from the page's lower-left corner.
type TextStamp struct {
	Page     int // zero-based
	X, Y     float64
	Text     string
	FontSize float64
}

// ApplyStamps renders the given stamps onto the document and returns
// the new bytes. Stamps are applied as positioned text watermarks on
// top of the existing page content.
func ApplyStamps(data []byte, stamps []TextStamp) ([]byte, error) {
	if len(stamps) == 0 {
		return data, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	m := make(map[int][]*model.Watermark, len(stamps))
	for _, s := range stamps {
		desc := fmt.Sprintf(
			"fontname:Helvetica, points:%.0f, sc:1 abs, rot:0, pos:bl, off:%.1f %.1f, fillc:#000000, op:1",
			s.FontSize, s.X, s.Y,
		)
		wm, err := api.TextWatermark(s.Text, desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("failed to build text stamp: %w", err)
		}
		pageNr := s.Page + 1
		m[pageNr] = append(m[pageNr], wm)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarksSliceMap(bytes.NewReader(data), &buf, m, conf); err != nil {
		return nil, fmt.Errorf("failed to apply text stamps: %w", err)
	}
	return buf.Bytes(), nil
}
