package kb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Manifest records how the corpus index was built. The loader validates it
// before trusting the vector collection and the chunk store, because the two
// artifacts are only linked by ordinal position: a count mismatch would
// silently attribute text to the wrong vector.
type Manifest struct {
	// Model is the embedding model identifier used at build time.
	// Queries must be embedded with the same model.
	Model string `json:"model"`

	// Dimension is the embedding vector dimension.
	Dimension int `json:"dimension"`

	// Count is the number of chunks (and vectors) in the index.
	Count int `json:"count"`
}

// manifestSchema constrains manifest.json on load.
var manifestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"model":     map[string]any{"type": "string", "minLength": 1},
		"dimension": map[string]any{"type": "integer", "minimum": 1},
		"count":     map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"model", "dimension", "count"},
	"additionalProperties": false,
}

// readManifest loads and validates a manifest file.
func readManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	compiled, err := compileManifestSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

func compileManifestSchema() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, so round-trip the
	// definition through encoding/json first.
	defBytes, err := json.Marshal(manifestSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse manifest schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://manifest.json", defParsed); err != nil {
		return nil, fmt.Errorf("add manifest schema: %w", err)
	}
	compiled, err := c.Compile("schema://manifest.json")
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	return compiled, nil
}

// writeManifest writes a manifest file.
func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
