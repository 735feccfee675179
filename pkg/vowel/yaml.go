package vowel

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses the YAML form of the dataset document.
func ParseYAML(data []byte) (*Dataset, error) {
	var f fileDataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("vowel: parse yaml: %w", err)
	}
	return f.toDataset()
}

// ToYAML encodes a dataset in the document format ParseYAML reads.
func ToYAML(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.toFile()); err != nil {
		return nil, fmt.Errorf("vowel: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
