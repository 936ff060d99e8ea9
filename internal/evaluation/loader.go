package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenCases reads a golden case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}

	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}

	return cases, nil
}

// ValidateGoldenCases checks ids are unique and every case names a known
// field, a transcript and an expected value.
func ValidateGoldenCases(cases []GoldenCase) error {
	valid := make(map[string]struct{})
	for _, f := range ValidFields() {
		valid[f] = struct{}{}
	}
	seen := make(map[string]struct{}, len(cases))

	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if _, ok := valid[c.Field]; !ok {
			return fmt.Errorf("case %q: invalid field %q", c.ID, c.Field)
		}
		if c.Transcript == "" {
			return fmt.Errorf("case %q: missing transcript", c.ID)
		}
		if c.Expected == "" {
			return fmt.Errorf("case %q: missing expected value", c.ID)
		}
	}

	return nil
}
