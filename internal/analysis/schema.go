package analysis

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema mirrors the structured-output schema object of the Gemini API.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ResponseSchema is the schema sent with every generateContent call: an
// array of menu items, each requiring item_name, common_allergens and
// confidence_score.
func ResponseSchema() *Schema {
	return &Schema{
		Type: "ARRAY",
		Items: &Schema{
			Type: "OBJECT",
			Properties: map[string]*Schema{
				"item_name": {
					Type:        "STRING",
					Description: "Name of the menu item",
				},
				"common_allergens": {
					Type:        "ARRAY",
					Items:       &Schema{Type: "STRING"},
					Description: "List of common allergens found in this food item",
				},
				"confidence_score": {
					Type:        "INTEGER",
					Description: "Confidence in the identified allergens, 1-10, or 0 when Unknown",
				},
			},
			Required: []string{"item_name", "common_allergens", "confidence_score"},
		},
	}
}

// resultSchemaJSON is the local, stricter mirror of ResponseSchema. The
// external service is never trusted silently: extra fields and
// out-of-range confidence values fail closed here before decoding.
const resultSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"item_name": {"type": "string"},
			"common_allergens": {
				"type": "array",
				"items": {"type": "string"}
			},
			"confidence_score": {
				"type": "integer",
				"minimum": 0,
				"maximum": 10
			}
		},
		"required": ["item_name", "common_allergens", "confidence_score"],
		"additionalProperties": false
	}
}`

var resultSchema = gojsonschema.NewStringLoader(resultSchemaJSON)

// validateResultJSON checks the raw model output against the local result
// schema. The sentinel-error response carries "__ERROR__" in every field,
// including confidence_score, so it is validated separately by the caller.
func validateResultJSON(raw []byte) error {
	result, err := gojsonschema.Validate(resultSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("result schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("model output does not match result schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
