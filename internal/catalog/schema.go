package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/manifest.schema.json
var manifestSchemaJSON []byte

const manifestSchemaID = "https://collabora.example/atomupd-core/manifest.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledManifestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("decode embedded manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(manifestSchemaID, doc); err != nil {
			schemaErr = fmt.Errorf("add manifest schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(manifestSchemaID)
	})
	return schema, schemaErr
}

// ValidateSchema runs the implicit rule that precedes all others: the raw
// manifest JSON must conform to the manifest JSON Schema before any
// field-level or policy-level rule runs. This is what catches a
// type-mismatched field with a precise message instead of a generic Go
// unmarshal error.
func ValidateSchema(raw []byte) error {
	sch, err := compiledManifestSchema()
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode manifest json: %w", err)
	}

	if err := sch.Validate(instance); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
