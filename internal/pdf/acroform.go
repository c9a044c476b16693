package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FormField is one structured AcroForm field: its fully qualified name,
// its current value, and the underlying dictionary so callers can stage
// updates in place.
type FormField struct {
	Name  string
	Value string
	dict  types.Dict
}

// FormContext holds a parsed pdfcpu context plus the flattened field
// list. It is the unit the AcroForm strategy operates on.
type FormContext struct {
	ctx    *model.Context
	fields []FormField
}

// OpenForm reads PDF bytes into a pdfcpu context and walks the AcroForm
// field tree. A document without an AcroForm yields zero fields, not an
// error.
func OpenForm(data []byte) (*FormContext, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	fc := &FormContext{ctx: ctx}
	if err := fc.walkFields(); err != nil {
		return nil, err
	}
	return fc, nil
}

// Fields returns the flattened AcroForm fields.
func (fc *FormContext) Fields() []FormField {
	return fc.fields
}

// walkFields collects every named field from the AcroForm Fields array,
// descending into Kids for hierarchical forms.
func (fc *FormContext) walkFields() error {
	rootDict, err := fc.ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil
	}

	acroFormDict, err := fc.ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil
	}

	fieldsArray, err := fc.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil
	}

	for _, fieldRef := range fieldsArray {
		fc.collectField(fieldRef, "")
	}
	return nil
}

func (fc *FormContext) collectField(fieldObj types.Object, prefix string) {
	fieldDict, err := fc.ctx.DereferenceDict(fieldObj)
	if err != nil || fieldDict == nil {
		return
	}

	name := prefix
	if nameObj, found := fieldDict.Find("T"); found {
		if partial, err := fc.ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			if name != "" {
				name += "."
			}
			name += partial
		}
	}

	// Terminal fields carry FT (possibly inherited); non-terminal nodes
	// only aggregate Kids.
	if kidsObj, found := fieldDict.Find("Kids"); found {
		if kids, err := fc.ctx.DereferenceArray(kidsObj); err == nil && len(kids) > 0 {
			// A widget kid has no T of its own; treat the parent as the
			// terminal field in that case.
			terminal := true
			for _, kid := range kids {
				kidDict, err := fc.ctx.DereferenceDict(kid)
				if err != nil || kidDict == nil {
					continue
				}
				if _, hasName := kidDict.Find("T"); hasName {
					terminal = false
					fc.collectField(kid, name)
				}
			}
			if !terminal {
				return
			}
		}
	}

	if name == "" {
		return
	}

	field := FormField{Name: name, dict: fieldDict}
	if valueObj, found := fieldDict.Find("V"); found {
		if v, err := fc.ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
			field.Value = v
		}
	}
	fc.fields = append(fc.fields, field)
}

// SetValue stages a new value on a field dictionary and drops its
// cached appearance stream so the value renders after flattening.
func (fc *FormContext) SetValue(f FormField, value string) {
	f.dict["V"] = types.StringLiteral(value)
	delete(f.dict, "AP")
}

// Write applies staged updates and serializes the document: the
// AcroForm is marked NeedAppearances so viewers regenerate field
// rendering, and leftover field-display annotations are stripped from
// each page so stale appearances cannot shadow the new values.
func (fc *FormContext) Write() ([]byte, error) {
	rootDict, err := fc.ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	if acroFormObj, found := rootDict.Find("AcroForm"); found {
		if acroFormDict, err := fc.ctx.DereferenceDict(acroFormObj); err == nil && acroFormDict != nil {
			acroFormDict["NeedAppearances"] = types.Boolean(true)
		}
	}

	for i := 1; i <= fc.ctx.PageCount; i++ {
		pageDict, _, _, err := fc.ctx.PageDict(i, false)
		if err != nil || pageDict == nil {
			continue
		}
		delete(pageDict, "Annots")
	}

	var buf bytes.Buffer
	if err := api.WriteContext(fc.ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}
