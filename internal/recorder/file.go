package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SaaSTracker/internal/tracker"

	"github.com/rs/zerolog"
)

// FileRecorder writes the latest dashboard to a JSON file and appends a
// summary line per reload to a JSON-lines history next to it.
type FileRecorder struct {
	path        string
	historyPath string
	mu          sync.Mutex
	log         zerolog.Logger
	now         func() time.Time
}

// NewFileRecorder creates the export directory and returns a recorder
// writing to path. The history goes to path with a .history.jsonl suffix.
func NewFileRecorder(path string, log zerolog.Logger) (*FileRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export dir: %w", err)
		}
	}
	r := &FileRecorder{
		path:        path,
		historyPath: historyPath(path),
		log:         log.With().Str("component", "recorder").Logger(),
		now:         time.Now,
	}
	r.log.Info().Str("path", path).Msg("file recorder opened")
	return r, nil
}

func historyPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".history.jsonl"
}

// Record replaces the export file atomically and appends one history line.
func (r *FileRecorder) Record(ctx context.Context, d tracker.Dashboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	if err := writeAtomic(r.path, data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	line, err := json.Marshal(historyEntry(d, r.now().UTC().Format(time.RFC3339)))
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	r.log.Debug().Str("load_id", d.LoadID).Msg("dashboard recorded")
	return nil
}

func (r *FileRecorder) Close() error { return nil }

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
