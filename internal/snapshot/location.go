// Package snapshot fetches dataset snapshot files and loads them into the
// embedded engine.
package snapshot

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Kind is where a snapshot lives.
type Kind string

const (
	KindFile Kind = "file"
	KindS3   Kind = "s3"
	KindHTTP Kind = "http"
)

// File formats.
const (
	FormatParquet = "parquet"
	FormatCSV     = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// Location is a parsed snapshot source.
type Location struct {
	Raw    string
	Kind   Kind
	Path   string // local path, or object key for s3
	Bucket string
	URL    string
	Format string
}

// ParseLocation accepts a local path, s3://bucket/key or an http(s) URL.
// The format comes from the file extension.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty snapshot location")
	}
	loc := Location{Raw: raw, Kind: KindFile, Path: raw}

	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "s3":
			key := strings.TrimPrefix(u.Path, "/")
			if u.Host == "" || key == "" {
				return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", raw)
			}
			loc = Location{Raw: raw, Kind: KindS3, Bucket: u.Host, Path: key}
		case "http", "https":
			loc = Location{Raw: raw, Kind: KindHTTP, URL: raw, Path: u.Path}
		case "file":
			loc.Path = u.Path
		}
	}

	switch strings.ToLower(path.Ext(loc.Path)) {
	case ".parquet":
		loc.Format = FormatParquet
	case ".csv":
		loc.Format = FormatCSV
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
	return loc, nil
}
