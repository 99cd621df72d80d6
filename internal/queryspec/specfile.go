// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queryspec

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadSpecFile reads a specification from a YAML file:
//
//	groups:
//	  - [gene, genetic]
//	  - [therapy]
//	filters:
//	  year_from: 2018
//	  year_to: 2023
//	  doc_types: [article, review]
//	  languages: [english]
//
// The loaded spec is validated before being returned.
func LoadSpecFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading spec file: %w", err)
	}
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("parsing spec file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Spec{}, fmt.Errorf("spec file %s: %w", path, err)
	}
	return s, nil
}

// WriteSpecFile saves a specification to a YAML file so it can be
// re-rendered or re-run later.
func WriteSpecFile(path string, s Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling spec: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
