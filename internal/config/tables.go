package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docufill/pdf-form-filler/internal/fill"
)

// Tables bundles the two static lookup tables the fill engine reads:
// the field mapping (aliases + write geometry) and the label pattern
// variants. Both are loaded once at process start and never mutated.
type Tables struct {
	Mapping  fill.Mapping
	Patterns map[fill.FieldType][]string
}

// mappingFile mirrors the on-disk mapping.yaml shape.
type mappingFile struct {
	Fields []struct {
		Key           string   `yaml:"key"`
		AcroformNames []string `yaml:"acroform_names"`
		Write         struct {
			Offset struct {
				DX float64 `yaml:"dx"`
				DY float64 `yaml:"dy"`
			} `yaml:"offset"`
			FontSize float64 `yaml:"font_size"`
		} `yaml:"write"`
	} `yaml:"fields"`
}

// patternsFile mirrors the on-disk patterns.yaml shape.
type patternsFile struct {
	Labels map[string][]string `yaml:"labels"`
}

// LoadTables builds the configuration tables: compiled-in defaults,
// overridden per field by the optional YAML files.
func LoadTables(cfg *Config) (*Tables, error) {
	t := &Tables{
		Mapping:  fill.DefaultMapping(),
		Patterns: make(map[fill.FieldType][]string),
	}

	if cfg.MappingFile != "" {
		if err := t.loadMapping(cfg.MappingFile); err != nil {
			return nil, err
		}
	}
	if cfg.PatternsFile != "" {
		if err := t.loadPatterns(cfg.PatternsFile); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Tables) loadMapping(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mapping file: %w", err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("failed to parse mapping file: %w", err)
	}

	for _, entry := range mf.Fields {
		ft, ok := fill.ParseFieldType(entry.Key)
		if !ok {
			return fmt.Errorf("mapping file: unknown field key %q", entry.Key)
		}

		fm := t.Mapping[ft]
		if len(entry.AcroformNames) > 0 {
			fm.AcroNames = entry.AcroformNames
		}
		if entry.Write.Offset.DX != 0 {
			fm.OffsetX = entry.Write.Offset.DX
		}
		if entry.Write.Offset.DY != 0 {
			fm.OffsetY = entry.Write.Offset.DY
		}
		if entry.Write.FontSize > 0 {
			fm.FontSize = entry.Write.FontSize
		}
		t.Mapping[ft] = fm
	}

	return nil
}

func (t *Tables) loadPatterns(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read patterns file: %w", err)
	}

	var pf patternsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("failed to parse patterns file: %w", err)
	}

	for key, variants := range pf.Labels {
		ft, ok := fill.ParseFieldType(key)
		if !ok {
			return fmt.Errorf("patterns file: unknown field key %q", key)
		}
		t.Patterns[ft] = append(t.Patterns[ft], variants...)
	}

	return nil
}
