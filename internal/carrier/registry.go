package carrier

import (
	"sort"

	"github.com/rotisserie/eris"
)

// builtins lists every registered adapter. Adding a carrier means adding
// its constructor here and nothing else.
func builtins() []Spec {
	return []Spec{
		americo(),
		mutualOfOmaha(),
		aetna(),
		accendo(),
		transamerica(),
		royalNeighbors(),
	}
}

// Registry returns a fresh key-to-spec map. Specs are values; callers
// cannot corrupt each other's copies.
func Registry() map[string]Spec {
	specs := builtins()
	m := make(map[string]Spec, len(specs))
	for _, s := range specs {
		m[s.Key] = s
	}
	return m
}

// Get looks up one adapter by key.
func Get(key string) (Spec, error) {
	s, ok := Registry()[key]
	if !ok {
		return Spec{}, eris.Errorf("carrier: unknown carrier key %q", key)
	}
	return s, nil
}

// Keys returns all registered carrier keys, sorted.
func Keys() []string {
	specs := builtins()
	keys := make([]string, 0, len(specs))
	for _, s := range specs {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)
	return keys
}

// ValidateAll checks every registered adapter declaration. Called at
// startup so a malformed adapter fails fast instead of misclassifying.
func ValidateAll() error {
	seen := make(map[string]struct{})
	for _, s := range builtins() {
		if _, dup := seen[s.Key]; dup {
			return eris.Errorf("carrier: duplicate key %q", s.Key)
		}
		seen[s.Key] = struct{}{}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
