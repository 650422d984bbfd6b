package viewstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Store holds the server-side view state with concurrency safety. When a
// file path is set the state survives restarts.
type Store struct {
	mu       sync.Mutex
	state    State
	filePath string
	log      zerolog.Logger
}

// NewStore creates a Store, loading state from filePath when it exists.
// An empty filePath keeps state in memory only.
func NewStore(filePath string, log zerolog.Logger) (*Store, error) {
	s := &Store{state: Default(), filePath: filePath, log: log.With().Str("component", "viewstate").Logger()}
	if filePath == "" {
		return s, nil
	}
	st, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	s.state = st
	return s, nil
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Dispatch reduces the action into the stored state and returns the result.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return copyState(s.state), err
	}
	s.state = next
	if err := s.save(); err != nil {
		s.log.Error().Err(err).Msg("failed to save view state")
	}
	return copyState(next), nil
}

func (s *Store) save() error {
	if s.filePath == "" {
		return nil
	}
	return Save(s.filePath, s.state)
}

func copyState(st State) State {
	st.Sectors = append([]string(nil), st.Sectors...)
	return st
}

// Load reads state from a JSON file. A missing file yields Default.
func Load(filePath string) (State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return State{}, fmt.Errorf("read view state: %w", err)
	}
	st := Default()
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse view state: %w", err)
	}
	st.Sectors = cleanSectors(st.Sectors)
	return st, nil
}

// cleanSectors restores the sorted, unique form Shows relies on. Files
// edited by hand may hold any order.
func cleanSectors(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Save writes state to a JSON file.
func Save(filePath string, st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
