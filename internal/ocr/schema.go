package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

// BuildWordsJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// externally supplied OCR word lists, as a generic map. Validated at the
// boundary so the parser core never sees engine-specific shapes.
func BuildWordsJSONSchema() map[string]any {
	coord := map[string]any{"type": "number", "minimum": 0.0}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"text", "bbox"},
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "minLength": 1},
				"bbox": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"x0", "y0", "x1", "y1"},
					"properties": map[string]any{
						"x0": coord,
						"y0": coord,
						"x1": coord,
						"y1": coord,
					},
				},
			},
		},
	}
}

// ValidateWordsJSON validates raw word-list JSON against the schema.
func ValidateWordsJSON(data []byte) error {
	b, err := json.Marshal(BuildWordsJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("words.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schemaDoc, err := compiler.Compile("words.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schemaDoc.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// LoadWordsJSON reads, validates and decodes a pre-extracted word-list file.
func LoadWordsJSON(path string) ([]schedule.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read words file: %w", err)
	}
	if err := ValidateWordsJSON(data); err != nil {
		return nil, err
	}
	var words []schedule.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	return words, nil
}
