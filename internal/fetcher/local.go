package fetcher

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// LocalProvider reads exports from the local filesystem.
type LocalProvider struct{}

// Fetch reads the file at path.
func (l *LocalProvider) Fetch(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", path)
	}
	return data, nil
}
