package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// SchemaError reports a knowledge base document that does not satisfy the
// schema or its structural invariants. Loading fails fast with it instead of
// letting a malformed base produce silent mismatches during matching.
type SchemaError struct {
	Path   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("knowledge base %s invalid: %s", e.Path, strings.Join(e.Issues, "; "))
}

// Load reads, schema-validates and decodes the knowledge base document at
// path. It is meant to run once at startup; callers gate matching off when it
// fails.
func Load(path string) (*Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate knowledge base: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &SchemaError{Path: path, Issues: issues}
	}

	var base Base
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	if issues := checkInvariants(&base); len(issues) > 0 {
		return nil, &SchemaError{Path: path, Issues: issues}
	}

	return &base, nil
}

// checkInvariants enforces the constraints the JSON schema cannot express:
// disease ids unique across the whole base, medication ids unique.
func checkInvariants(base *Base) []string {
	var issues []string

	seen := make(map[string]string)
	for key, sp := range base.Specialties {
		for _, d := range sp.Diseases {
			if prev, ok := seen[d.Id]; ok {
				issues = append(issues, fmt.Sprintf("disease id %q duplicated in %q and %q", d.Id, prev, key))
				continue
			}
			seen[d.Id] = key
		}
	}

	medSeen := make(map[string]bool)
	for _, m := range base.Medications {
		if medSeen[m.Id] {
			issues = append(issues, fmt.Sprintf("medication id %q duplicated", m.Id))
		}
		medSeen[m.Id] = true
	}

	return issues
}
