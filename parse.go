package querygen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kanda123-lab/querygen/engine/models"
)

// Parse decodes a JSON query description.
// Returns:
//   - query: the typed statement
//   - dialect: the dialect named in the description, "" when absent
//   - error: decoding or type error
func Parse(data []byte) (models.Query, string, error) {
	desc, err := models.ParseDescription(data)
	if err != nil {
		return nil, "", err
	}
	query, err := desc.Query()
	if err != nil {
		return nil, "", err
	}
	return query, desc.Dialect, nil
}

// ParseYAML decodes a YAML query description with the same field names as
// the JSON form.
func ParseYAML(data []byte) (models.Query, string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("invalid yaml description: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, "", fmt.Errorf("invalid yaml description: %w", err)
	}
	return Parse(asJSON)
}

// ParseAny accepts JSON or YAML, picking JSON when the document starts
// with an object.
func ParseAny(data []byte) (models.Query, string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return Parse(trimmed)
	}
	return ParseYAML(trimmed)
}
