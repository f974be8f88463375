package commons

import (
	"bytes"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadYAMLFile reads path and decodes it into out.
func LoadYAMLFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading yaml file: %w", err)
	}

	if err := DecodeYAML(data, out); err != nil {
		return fmt.Errorf("parsing yaml file %s: %w", path, err)
	}

	return nil
}

// DecodeYAML decodes data strictly: keys that do not map onto out are errors.
func DecodeYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
