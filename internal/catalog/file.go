package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyhub/internal/assessment"
)

// SupportedFormat is the major version of the catalog file format this
// build understands.
const SupportedFormat = "v1"

// fileDocument is the on-disk catalog layout.
type fileDocument struct {
	Format      string                  `json:"format"`
	Assessments []assessment.Assessment `json:"assessments"`
}

// documentSchema describes a catalog file. Semantic checks that JSON Schema
// cannot express (correct_index bounds, unique ids) are left to
// assessment.Validate.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"format", "assessments"},
	"properties": map[string]any{
		"format": map[string]any{"type": "string"},
		"assessments": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "topic", "questions", "difficulty"},
				"properties": map[string]any{
					"id":                 map[string]any{"type": "string", "minLength": 1},
					"title":              map[string]any{"type": "string", "minLength": 1},
					"topic":              map[string]any{"type": "string", "minLength": 1},
					"difficulty":         map[string]any{"enum": []any{"Easy", "Medium", "Hard"}},
					"time_limit_minutes": map[string]any{"type": "integer", "minimum": 0},
					"status":             map[string]any{"enum": []any{"available", "in-progress", "completed"}},
					"last_score":         map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "prompt", "options", "correct_index", "topic", "difficulty"},
							"properties": map[string]any{
								"id":            map[string]any{"type": "integer", "minimum": 1},
								"prompt":        map[string]any{"type": "string", "minLength": 1},
								"options":       map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
								"correct_index": map[string]any{"type": "integer", "minimum": 0},
								"explanation":   map[string]any{"type": "string"},
								"topic":         map[string]any{"type": "string", "minLength": 1},
								"difficulty":    map[string]any{"enum": []any{"Easy", "Medium", "Hard"}},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants JSON-decoded values, not Go literals.
		b, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://studyhub-catalog.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// LoadFile reads a YAML or JSON catalog file and returns a validated
// Static provider.
func LoadFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	default:
		return ParseJSON(raw)
	}
}

// ParseYAML parses a YAML catalog document.
func ParseYAML(raw []byte) (*Static, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	// Re-encode as JSON so schema validation and decoding share one path.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert catalog yaml: %w", err)
	}
	return ParseJSON(b)
}

// ParseJSON parses a JSON catalog document.
func ParseJSON(raw []byte) (*Static, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}

	sch, err := catalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := checkFormat(doc.Format); err != nil {
		return nil, err
	}

	return NewStatic(doc.Assessments)
}

// checkFormat accepts any semantic version with the supported major.
func checkFormat(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("catalog format %q is not a semantic version", v)
	}
	if semver.Major(v) != SupportedFormat {
		return fmt.Errorf("catalog format %s is not supported (want %s.x)", v, SupportedFormat)
	}
	return nil
}
