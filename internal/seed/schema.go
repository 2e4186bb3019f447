package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "seed.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding seed schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// validateShape checks a decoded TOML document against the seed schema:
// known keys only, with the right types. Titles and dates are checked
// afterwards by Validate.
func validateShape(doc map[string]any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through JSON so TOML-specific values become plain JSON types.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal seed: %w", err)
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal seed: %w", err)
	}

	if err := schema.Validate(obj); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError reports the first leaf cause of a validation failure.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("seed %s: %s", loc, ve.Message)
}
