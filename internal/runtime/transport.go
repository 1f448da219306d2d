// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"crypto/md5"  //nolint:gosec // repository checksums, not a security boundary
	"crypto/sha1" //nolint:gosec // see above
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// maxMetadataSize bounds how much of a remote metadata document is read.
const maxMetadataSize = 4 << 20

type (
	// transport moves files to and from a repository. Paths are
	// slash-separated and relative to the repository root.
	transport interface {
		// Get returns the file content, or an error wrapping
		// errResourceNotFound when the file does not exist.
		Get(ctx context.Context, p string) ([]byte, error)
		Put(ctx context.Context, p string, data []byte) error
	}

	httpTransport struct {
		client   *http.Client
		base     *url.URL
		username string
		password string
	}

	fsTransport struct {
		fs billy.Filesystem
	}
)

func newFSTransport(fs billy.Filesystem) *fsTransport {
	return &fsTransport{fs: fs}
}

// Get reads p from the filesystem.
func (t *fsTransport) Get(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := util.ReadFile(t.fs, p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", p, errResourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Put writes p, creating parent directories as needed.
func (t *fsTransport) Put(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", p, err)
	}
	if err := util.WriteFile(t.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

func (t *httpTransport) resolve(p string) string {
	u := *t.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + p
	u.RawPath = ""
	return u.String()
}

func (t *httpTransport) do(ctx context.Context, method, p string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.resolve(p), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request for %s: %w", method, p, err)
	}
	if t.username != "" || t.password != "" {
		req.SetBasicAuth(t.username, t.password)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Redacted(), err)
	}
	return resp, nil
}

// Get fetches p; 404 maps to errResourceNotFound.
func (t *httpTransport) Get(ctx context.Context, p string) ([]byte, error) {
	resp, err := t.do(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", p, errResourceNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UnexpectedStatusError{
			Method:     http.MethodGet,
			URL:        resp.Request.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Put uploads p.
func (t *httpTransport) Put(ctx context.Context, p string, data []byte) error {
	resp, err := t.do(ctx, http.MethodPut, p, data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UnexpectedStatusError{
			Method:     http.MethodPut,
			URL:        resp.Request.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	return nil
}

// fileURLPath returns the local directory a file:// repository URL points at.
func fileURLPath(u *url.URL) string {
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	// file:///C:/repo parses with a leading slash before the drive letter.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return p
}

func newFileTransport(u *url.URL) *fsTransport {
	return newFSTransport(osfs.New(fileURLPath(u)))
}

// upload puts data at p followed by its .md5 and .sha1 checksum files.
func upload(ctx context.Context, t transport, p string, data []byte) error {
	if err := t.Put(ctx, p, data); err != nil {
		return err
	}
	for _, c := range checksums(data) {
		if err := t.Put(ctx, p+c.suffix, []byte(c.value)); err != nil {
			return err
		}
	}
	return nil
}

type checksum struct {
	suffix string
	value  string
}

func checksums(data []byte) []checksum {
	md5sum := md5.Sum(data)   //nolint:gosec // repository checksum
	sha1sum := sha1.Sum(data) //nolint:gosec // repository checksum
	return []checksum{
		{suffix: ".md5", value: hex.EncodeToString(md5sum[:])},
		{suffix: ".sha1", value: hex.EncodeToString(sha1sum[:])},
	}
}
