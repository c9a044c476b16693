package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Highlight opacity and color match the original yellow marker look.
const highlightOpacity = 0.3

// AddHighlights injects a yellow highlight annotation for every
// rectangle, keyed by zero-based page number, and returns the new
// document bytes.
func AddHighlights(data []byte, regions map[int][]Rect, note string) ([]byte, error) {
	if len(regions) == 0 {
		return data, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	for pageIdx, rects := range regions {
		pageNr := pageIdx + 1
		if pageNr < 1 || pageNr > ctx.PageCount {
			continue
		}
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil || pageDict == nil {
			continue
		}

		var annots types.Array
		if obj, found := pageDict.Find("Annots"); found {
			if arr, err := ctx.DereferenceArray(obj); err == nil {
				annots = arr
			}
		}

		for _, r := range rects {
			ann := highlightDict(r, note)
			ir, err := ctx.IndRefForNewObject(ann)
			if err != nil {
				return nil, fmt.Errorf("failed to register annotation: %w", err)
			}
			annots = append(annots, *ir)
		}

		pageDict["Annots"] = annots
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}

// highlightDict builds a text-markup highlight annotation dictionary.
// QuadPoints order is upper-left, upper-right, lower-left, lower-right.
func highlightDict(r Rect, note string) types.Dict {
	d := types.Dict(map[string]types.Object{
		"Type":    types.Name("Annot"),
		"Subtype": types.Name("Highlight"),
		"Rect":    types.NewNumberArray(r.X0, r.Y0, r.X1, r.Y1),
		"QuadPoints": types.NewNumberArray(
			r.X0, r.Y1,
			r.X1, r.Y1,
			r.X0, r.Y0,
			r.X1, r.Y0,
		),
		"C":  types.NewNumberArray(1, 1, 0),
		"CA": types.Float(highlightOpacity),
		"F":  types.Integer(4),
	})
	if note != "" {
		d["Contents"] = types.StringLiteral(note)
	}
	return d
}
