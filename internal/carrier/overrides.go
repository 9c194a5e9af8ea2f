package carrier

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Override tunes display and layout knobs of one adapter without touching
// its vocabulary or classification rules, which stay in code.
type Override struct {
	MaxBreakdownStatuses *int    `yaml:"max_breakdown_statuses,omitempty"`
	SheetKeyword         *string `yaml:"sheet_keyword,omitempty"`
	HeaderRow            *int    `yaml:"header_row,omitempty"`
}

// Overrides is the parsed per-carrier overrides file.
type Overrides struct {
	Carriers map[string]Override `yaml:"carriers"`
}

// LoadOverrides reads an overrides YAML file. A missing path is not an
// error; overrides are optional.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Overrides{}, nil
		}
		return nil, eris.Wrapf(err, "carrier: read overrides %s", path)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, eris.Wrapf(err, "carrier: parse overrides %s", path)
	}

	for key := range o.Carriers {
		if _, err := Get(key); err != nil {
			return nil, eris.Wrapf(err, "carrier: overrides reference unknown carrier")
		}
	}
	return &o, nil
}

// Apply returns a copy of the spec with any matching override applied.
func (o *Overrides) Apply(s Spec) Spec {
	if o == nil {
		return s
	}
	ov, ok := o.Carriers[s.Key]
	if !ok {
		return s
	}
	if ov.MaxBreakdownStatuses != nil {
		s.MaxBreakdownStatuses = *ov.MaxBreakdownStatuses
	}
	if ov.SheetKeyword != nil {
		s.SheetKeyword = *ov.SheetKeyword
	}
	if ov.HeaderRow != nil {
		s.HeaderRow = *ov.HeaderRow
	}
	return s
}
