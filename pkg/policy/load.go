package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML policy file on top of Default. Keys present in the file
// replace the default value for that key; absent keys keep it.
func Load(filePath string) (Policy, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("failed to parse policy file %s: %w", filePath, err)
	}

	if _, err := p.Compile(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy file %s: %w", filePath, err)
	}
	return p, nil
}
