package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Document is a declarative description of one ACL container: the role and
// action vocabularies plus an ordered list of grant rules. Rules apply in
// document order, so a later rule overwrites the pairs an earlier one set.
type Document struct {
	Roles   []string `yaml:"roles" json:"roles"`
	Actions []string `yaml:"actions" json:"actions"`
	Rules   []Rule   `yaml:"rules" json:"rules"`
}

// Rule grants or denies every (role, action) pair in the cartesian product
// of its two lists. Deny false (the default) writes allow entries.
type Rule struct {
	Roles   []string `yaml:"roles" json:"roles"`
	Actions []string `yaml:"actions" json:"actions"`
	Deny    bool     `yaml:"deny,omitempty" json:"deny,omitempty"`
}

// Parse unmarshals a YAML policy document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	return &doc, nil
}

// ParseJSONC strips // line comments, /* block comments */, and trailing
// commas from data, then unmarshals the remaining JSON.
func ParseJSONC(data []byte) (*Document, error) {
	stripped := jsonc.ToJSON(data)

	var doc Document
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	return &doc, nil
}

// ReadFile loads a policy document from disk, picking the parser by file
// extension: .json and .jsonc go through [ParseJSONC], everything else is
// treated as YAML.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		doc, err = ParseJSONC(data)
	default:
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
