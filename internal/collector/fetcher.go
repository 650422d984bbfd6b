package collector

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	// ErrNotFound means the store has no file by that name.
	ErrNotFound = errors.New("not found")
	// ErrTransport wraps failures to reach or read the store.
	ErrTransport = errors.New("transport failure")
)

// Reference and auxiliary files that are never daily snapshots.
const (
	BaselineFile      = "baseline.json"
	LTMHighFile       = "ltm_high.json"
	FundamentalsFile  = "fundamentals.json"
	PrivateHealthFile = "private_health.json"
	SectorNewsFile    = "sector_news.json"
)

var nonSnapshotFiles = map[string]bool{
	BaselineFile:      true,
	LTMHighFile:       true,
	FundamentalsFile:  true,
	PrivateHealthFile: true,
	SectorNewsFile:    true,
}

// Fetcher reads files from a snapshot store.
type Fetcher interface {
	// List returns the store's .json file names, sorted.
	List(ctx context.Context) ([]string, error)
	// Fetch returns a file's raw bytes, or an error wrapping ErrNotFound.
	Fetch(ctx context.Context, name string) ([]byte, error)
	Name() string
}

// IsSnapshotFile reports whether a listed name holds a daily snapshot.
func IsSnapshotFile(name string) bool {
	return strings.HasSuffix(name, ".json") && !nonSnapshotFiles[name]
}

// cleanName rejects names that would escape the store root.
func cleanName(name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.Contains(name, "\\") {
		return "", false
	}
	c := path.Clean(name)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") || path.IsAbs(c) {
		return "", false
	}
	return c, true
}
