// internal/workers/matching/find-best-matches/schema.go
package findbestmatches

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchema guards the shape of the process variables before they reach
// the engine. Profile internals are left loose on purpose; the engine
// normalizes and defaults anything beyond the structural minimum. Negative
// weights pass validation and are clamped to zero during normalization.
const inputSchema = `{
	"type": "object",
	"properties": {
		"menteeProfile": {
			"type": "object",
			"properties": {
				"id": {"type": "string", "minLength": 1}
			},
			"required": ["id"]
		},
		"mentorPool": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"}
				}
			}
		},
		"weights": {
			"type": "object",
			"properties": {
				"skills":        {"type": "number"},
				"availability":  {"type": "number"},
				"communication": {"type": "number"},
				"experience":    {"type": "number"},
				"personality":   {"type": "number"},
				"learning":      {"type": "number"},
				"budget":        {"type": "number"},
				"location":      {"type": "number"}
			}
		},
		"topN": {"type": "integer", "minimum": 0}
	},
	"required": ["menteeProfile", "mentorPool"]
}`

var compiledSchema = gojsonschema.NewStringLoader(inputSchema)

func validateVariables(raw string) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("invalid match request: %v", errs)
	}
	return nil
}
