package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// specEntry is one name/specifier pair of a JSON dependency object
type specEntry struct {
	Name string
	Raw  string
}

// orderedSpecs decodes a JSON object of name -> specifier while keeping the
// key order of the document. Non-string values are skipped.
type orderedSpecs []specEntry

func (o *orderedSpecs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected dependency object, got %v", tok)
	}

	var entries orderedSpecs
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected dependency name, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		var raw string
		if err := json.Unmarshal(value, &raw); err != nil {
			continue
		}
		entries = append(entries, specEntry{Name: key, Raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = entries
	return nil
}
