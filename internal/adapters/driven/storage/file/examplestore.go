// Package file provides a JSON-snapshot implementation of the example store.
// The full training set is held in memory and rewritten wholesale to a single
// human-readable snapshot after every mutation.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
	"github.com/ali1k/mcp-query-assistant/internal/logger"
)

// Ensure ExampleStore implements the interface.
var _ driven.ExampleStore = (*ExampleStore)(nil)

// ExampleStore keeps the ordered training set in memory and persists it as a
// JSON snapshot. Position order equals vector index slot order.
type ExampleStore struct {
	path     string
	examples []domain.TrainingExample
	slots    map[string]int // example ID -> slot
}

// New creates an example store backed by the snapshot at path.
// If path is empty the store is in-memory only.
func New(path string) *ExampleStore {
	return &ExampleStore{
		path:  path,
		slots: make(map[string]int),
	}
}

// Load reads the snapshot from disk. A missing file starts the store empty;
// an unparseable file is logged as a warning and also starts the store empty
// so a corrupt snapshot never blocks startup.
func (s *ExampleStore) Load(_ context.Context) error {
	s.examples = nil
	s.slots = make(map[string]int)

	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No example snapshot at %s, starting empty", s.path)
			return nil
		}
		return fmt.Errorf("read example snapshot: %w", err)
	}

	var examples []domain.TrainingExample
	if err := json.Unmarshal(data, &examples); err != nil {
		logger.Warn("Example snapshot %s is unparseable, starting empty: %v", s.path, err)
		return nil
	}

	s.examples = examples
	s.reindex()
	logger.Debug("Loaded %d examples from %s", len(s.examples), s.path)
	return nil
}

// All returns a copy of the examples in slot order.
func (s *ExampleStore) All() []domain.TrainingExample {
	out := make([]domain.TrainingExample, len(s.examples))
	copy(out, s.examples)
	return out
}

// Len returns the number of stored examples.
func (s *ExampleStore) Len() int {
	return len(s.examples)
}

// Get returns the example at the given slot.
func (s *ExampleStore) Get(slot int) (domain.TrainingExample, bool) {
	if slot < 0 || slot >= len(s.examples) {
		return domain.TrainingExample{}, false
	}
	return s.examples[slot], true
}

// SlotOf returns the current slot for an example ID.
func (s *ExampleStore) SlotOf(id string) (int, bool) {
	slot, ok := s.slots[id]
	return slot, ok
}

// Append adds the example at the end, assigning a fresh ID when absent, and
// returns the stored example and its slot.
func (s *ExampleStore) Append(example domain.TrainingExample) (domain.TrainingExample, int) {
	if example.ID == "" {
		example.ID = uuid.NewString()
	}
	slot := len(s.examples)
	s.examples = append(s.examples, example)
	s.slots[example.ID] = slot
	return example, slot
}

// FindDuplicate returns the first example matching the normalised
// (question, answer query) identity.
func (s *ExampleStore) FindDuplicate(question, answerQuery string) (domain.TrainingExample, bool) {
	key := domain.DuplicateKey(question, answerQuery)
	for _, ex := range s.examples {
		if domain.DuplicateKey(ex.Question, ex.AnswerQuery) == key {
			return ex, true
		}
	}
	return domain.TrainingExample{}, false
}

// RemoveByIDs drops the examples with the given IDs, preserving the relative
// order of the survivors, and returns the number removed.
func (s *ExampleStore) RemoveByIDs(ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	kept := s.examples[:0]
	removed := 0
	for _, ex := range s.examples {
		if remove[ex.ID] {
			removed++
			continue
		}
		kept = append(kept, ex)
	}
	s.examples = kept
	s.reindex()
	return removed
}

// Persist rewrites the snapshot atomically: the new content is written to a
// temporary file in the same directory and renamed over the old snapshot, so
// a crash mid-write never leaves a partial file behind.
func (s *ExampleStore) Persist(_ context.Context) error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	examples := s.examples
	if examples == nil {
		examples = []domain.TrainingExample{}
	}
	data, err := json.MarshalIndent(examples, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	logger.Debug("Persisted %d examples to %s", len(s.examples), s.path)
	return nil
}

// Path returns the snapshot file path.
func (s *ExampleStore) Path() string {
	return s.path
}

// reindex rebuilds the ID-to-slot map from the current order.
func (s *ExampleStore) reindex() {
	s.slots = make(map[string]int, len(s.examples))
	for slot, ex := range s.examples {
		s.slots[ex.ID] = slot
	}
}
