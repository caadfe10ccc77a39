package daylog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default document locations, relative to the data root or origin.
const (
	DefaultSettingsPath = "settings.json"
	DefaultEntriesPath  = "data/entries.json"
)

// maxDocumentBytes bounds the size of a fetched document.
const maxDocumentBytes = 8 << 20

// Source loads the settings and entries documents.
type Source interface {
	Settings(ctx context.Context) (Settings, error)
	Entries(ctx context.Context) (EntriesDocument, error)
}

// FileSource reads documents from a file system.
type FileSource struct {
	FS           fs.FS
	SettingsPath string
	EntriesPath  string
}

// NewFileSource returns a FileSource over fsys using the default paths.
func NewFileSource(fsys fs.FS) *FileSource {
	return &FileSource{FS: fsys, SettingsPath: DefaultSettingsPath, EntriesPath: DefaultEntriesPath}
}

func (s *FileSource) Settings(ctx context.Context) (Settings, error) {
	var doc Settings
	err := s.read(ctx, s.SettingsPath, &doc)
	return doc, err
}

func (s *FileSource) Entries(ctx context.Context) (EntriesDocument, error) {
	var doc EntriesDocument
	err := s.read(ctx, s.EntriesPath, &doc)
	return doc, err
}

func (s *FileSource) read(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := s.FS.Open(strings.TrimPrefix(name, "./"))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return decodeDocument(name, f, v)
}

// HTTPSource fetches documents with GET requests relative to Base.
type HTTPSource struct {
	Client       *http.Client
	Base         *url.URL
	SettingsPath string
	EntriesPath  string
}

// NewHTTPSource parses origin and returns an HTTPSource using the default
// paths. The client timeout applies to each document separately.
func NewHTTPSource(origin string, timeout time.Duration) (*HTTPSource, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("origin %q: unsupported scheme %q", origin, base.Scheme)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &HTTPSource{
		Client:       &http.Client{Timeout: timeout},
		Base:         base,
		SettingsPath: DefaultSettingsPath,
		EntriesPath:  DefaultEntriesPath,
	}, nil
}

func (s *HTTPSource) Settings(ctx context.Context) (Settings, error) {
	var doc Settings
	err := s.get(ctx, s.SettingsPath, &doc)
	return doc, err
}

func (s *HTTPSource) Entries(ctx context.Context) (EntriesDocument, error) {
	var doc EntriesDocument
	err := s.get(ctx, s.EntriesPath, &doc)
	return doc, err
}

func (s *HTTPSource) get(ctx context.Context, name string, v any) error {
	ref, err := url.Parse(name)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", name, err)
	}
	target := s.Base.ResolveReference(ref).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: unexpected status %s", target, resp.Status)
	}
	return decodeDocument(target, resp.Body, v)
}

func decodeDocument(name string, r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > maxDocumentBytes {
		return fmt.Errorf("read %s: document exceeds %d bytes", name, maxDocumentBytes)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
