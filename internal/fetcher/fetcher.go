// Package fetcher provides the byte-stream side of an analysis request:
// loading carrier roster exports from local paths, HTTP(S) URLs, or FTP
// drop folders. The analysis engine itself never performs I/O.
package fetcher

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// Provider loads the raw bytes of one roster export.
type Provider interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Resolver dispatches a file reference to the matching provider by scheme.
// Bare paths go to the local provider.
type Resolver struct {
	local Provider
	http  Provider
	ftp   Provider
}

// NewResolver builds a resolver with the default provider set.
func NewResolver(opts HTTPOptions, ftpOpts FTPOptions) *Resolver {
	return &Resolver{
		local: &LocalProvider{},
		http:  NewHTTPProvider(opts),
		ftp:   NewFTPProvider(ftpOpts),
	}
}

// Fetch loads the referenced export.
func (r *Resolver) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return r.http.Fetch(ctx, ref)
	case strings.HasPrefix(ref, "ftp://"):
		return r.ftp.Fetch(ctx, ref)
	case strings.Contains(ref, "://"):
		return nil, eris.Errorf("fetcher: unsupported scheme in %q", ref)
	default:
		return r.local.Fetch(ctx, ref)
	}
}
