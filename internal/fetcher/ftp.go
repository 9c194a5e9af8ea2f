package fetcher

import (
	"context"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPOptions configures the FTP provider. Credentials default to anonymous;
// carrier drop folders that require a login set User and Password.
type FTPOptions struct {
	Timeout  time.Duration
	User     string
	Password string
}

// FTPProvider downloads roster exports from carrier FTP drop folders.
type FTPProvider struct {
	opts FTPOptions
}

// NewFTPProvider creates an FTPProvider with the given options.
func NewFTPProvider(opts FTPOptions) *FTPProvider {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.User == "" {
		opts.User = "anonymous"
		opts.Password = "anonymous@"
	}
	return &FTPProvider{opts: opts}
}

// Fetch connects, retrieves the file, and returns its bytes. The connection
// is released before returning.
func (f *FTPProvider) Fetch(ctx context.Context, ftpURL string) ([]byte, error) {
	addr, path, err := ftpAddress(ftpURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("fetcher: ftp connecting", zap.String("addr", addr), zap.String("path", path))

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp dial")
	}
	defer conn.Quit()

	if err := conn.Login(f.opts.User, f.opts.Password); err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp login")
	}

	resp, err := conn.Retr(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp retrieve")
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp read")
	}
	return data, nil
}

// ftpAddress turns an ftp:// URL into a dialable host:port and a remote
// file path, defaulting to the standard control port.
func ftpAddress(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrapf(err, "fetcher: parse ftp url %s", rawURL)
	}
	switch {
	case u.Scheme != "ftp":
		return "", "", eris.Errorf("fetcher: expected ftp scheme, got %q", u.Scheme)
	case u.Path == "":
		return "", "", eris.Errorf("fetcher: ftp url %s names no file", rawURL)
	}

	port := u.Port()
	if port == "" {
		port = "21"
	}
	return net.JoinHostPort(u.Hostname(), port), u.Path, nil
}
