package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateResponse checks raw model output against the request schema.
// A nil schema skips validation. Malformed JSON and schema violations
// both come back as *ErrInvalidResponse carrying the raw payload, so
// the repair loop can quote the offending document back to the model.
// A schema definition that does not compile is a caller bug and is
// returned as a plain error; feeding it to the model would fix nothing.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	compiled, err := schema.compile()
	if err != nil {
		return fmt.Errorf("schema %q does not compile: %w", schema.Name, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema %q violated: %w", schema.Name, err),
		}
	}
	return nil
}

// compile builds the jsonschema validator once per Schema value. The
// compiled form lives on the Schema itself, not in a process-wide
// registry, so two schemas that happen to share a name stay independent.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value; round-trip the
		// definition map to strip any typed values.
		defBytes, err := json.Marshal(s.Definition)
		if err != nil {
			s.compileErr = fmt.Errorf("marshal definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			s.compileErr = fmt.Errorf("parse definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", s.Name)
		if err := c.AddResource(url, def); err != nil {
			s.compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		s.compiled, s.compileErr = c.Compile(url)
	})
	return s.compiled, s.compileErr
}
