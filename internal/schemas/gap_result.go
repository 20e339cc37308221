package schemas

import (
	_ "embed"
)

// gapResultSchema is the contract for persisted gap analysis results.
//
//go:embed gap_result.schema.json
var gapResultSchema string

// ValidateGapResult validates raw JSON against the gap analysis result
// schema. A nil error means the document conforms.
func ValidateGapResult(jsonContent []byte) error {
	return ValidateJSONString(gapResultSchema, string(jsonContent))
}
