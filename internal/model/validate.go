package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(cvSchema)

// SchemaError lists every structural violation found in a raw document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Violations, "; ")
}

// ValidateMap checks a raw document against the embedded CV schema before it
// is normalized.
func ValidateMap(m map[string]interface{}) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(m))
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, e := range res.Errors() {
		se.Violations = append(se.Violations, e.String())
	}
	return se
}

// Import validates and normalizes a raw document in one step.
func Import(m map[string]interface{}) (*CVDocument, error) {
	if err := ValidateMap(m); err != nil {
		return nil, err
	}
	return Normalize(m)
}
