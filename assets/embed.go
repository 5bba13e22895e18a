package assets

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vault_words.yaml
var FS embed.FS

// WordFile is the YAML shape of a vocabulary file.
type WordFile struct {
	Words []string `yaml:"words"`
}

// ParseWordFile decodes a vocabulary YAML document.
func ParseWordFile(raw []byte) ([]string, error) {
	var wf WordFile
	if err := yaml.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("parse word file: %w", err)
	}
	return wf.Words, nil
}

// VaultWords returns the embedded default vocabulary, unnormalized.
func VaultWords() ([]string, error) {
	raw, err := FS.ReadFile("vault_words.yaml")
	if err != nil {
		return nil, err
	}
	return ParseWordFile(raw)
}
