package leaderboard

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/submission.schema.json
var submissionSchema string

const submissionSchemaURL = "submission.schema.json"

// SchemaValidator checks the shape of a raw submission body before it is
// decoded into a Submission.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the embedded submission schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	s, err := jsonschema.CompileString(submissionSchemaURL, submissionSchema)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: compile schema: %w", err)
	}
	return &SchemaValidator{schema: s}, nil
}

// Decode validates body against the schema and decodes it. Absent or empty
// fields map to ErrMissingFields; anything else to ErrMalformed.
func (v *SchemaValidator) Decode(body []byte) (Submission, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := v.schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) && missingField(ve) {
			return Submission{}, fmt.Errorf("%w: %v", ErrMissingFields, err)
		}
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var sub Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return sub, nil
}

func missingField(ve *jsonschema.ValidationError) bool {
	if len(ve.Causes) == 0 {
		return strings.HasSuffix(ve.KeywordLocation, "/required") ||
			strings.HasSuffix(ve.KeywordLocation, "/minLength")
	}
	for _, c := range ve.Causes {
		if missingField(c) {
			return true
		}
	}
	return false
}
