package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/storage"
)

// persistTimeout bounds a single write-back to storage.
const persistTimeout = 5 * time.Second

// minPrefixLen is the shortest id prefix Find accepts.
const minPrefixLen = 4

const maxIDAttempts = 100

// Store owns the task collection, the draft, the last add error and the
// active filter. It has exactly one caller at a time; every mutation goes
// through its methods and is written back to storage before returning.
type Store struct {
	storage storage.Storage
	key     string
	newID   func() string

	tasks  []Task
	draft  string
	errMsg string
	filter Filter
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Open hydrates a store from the value under key. A missing or unreadable
// value yields an empty collection; startup never fails on bad data.
func Open(ctx context.Context, st storage.Storage, key string, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     key,
		newID:   uuid.NewString,
		filter:  FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := st.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No saved tasks under %s, starting empty", key)
	case err != nil:
		logger.Warn("Failed to read tasks from %s, starting empty: %v", key, err)
	default:
		tasks, err := Decode(data)
		if err != nil {
			logger.Warn("Failed to parse tasks from %s, starting empty: %v", key, err)
		} else {
			s.tasks = tasks
			logger.Info("Loaded %d tasks from %s", len(tasks), key)
		}
	}

	return s
}

// Key returns the storage key the store persists to.
func (s *Store) Key() string { return s.key }

// Draft returns the uncommitted input text.
func (s *Store) Draft() string { return s.draft }

// ErrorMessage returns the last add error, or "" when none is set.
func (s *Store) ErrorMessage() string { return s.errMsg }

// Filter returns the active filter.
func (s *Store) Filter() Filter { return s.filter }

// Tasks returns a copy of the full collection in stored order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// VisibleTasks returns the collection as seen through the active filter.
func (s *Store) VisibleTasks() []Task {
	if s.filter == FilterAll {
		return s.Tasks()
	}
	visible := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			visible = append(visible, t)
		}
	}
	return visible
}

// Counts returns the number of tasks in total, still active, and completed.
func (s *Store) Counts() (total, active, completed int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return len(s.tasks), active, completed
}

// SetDraft replaces the draft verbatim and dismisses any add error.
func (s *Store) SetDraft(text string) {
	s.draft = text
	s.errMsg = ""
}

// SetFilter changes the visible subset. Filters are never persisted.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
}

// AddTask appends the trimmed draft as a new active task. A blank draft,
// or an id generator that only yields ids in use, sets the error message
// and leaves the collection and draft untouched.
func (s *Store) AddTask() (Task, error) {
	text := strings.TrimSpace(s.draft)
	if text == "" {
		s.errMsg = EmptyTaskMessage
		return Task{}, ErrEmptyTask
	}

	id, err := s.uniqueID()
	if err != nil {
		s.errMsg = err.Error()
		return Task{}, err
	}

	t := Task{ID: id, Text: text}
	s.tasks = append(s.tasks, t)
	s.draft = ""
	s.errMsg = ""
	s.persist()

	logger.Debug("Added task %s", t.ID)
	return t, nil
}

// ToggleTaskCompletion flips the completed flag of the task with id.
// Unknown ids are ignored; the return value reports whether one matched.
func (s *Store) ToggleTaskCompletion(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist()
	return true
}

// DeleteTask removes the task with id in place. Unknown ids are ignored.
func (s *Store) DeleteTask(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
	return true
}

// Find resolves an exact id or a unique prefix of at least four characters.
func (s *Store) Find(idOrPrefix string) (Task, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if i := s.index(idOrPrefix); i >= 0 {
		return s.tasks[i], nil
	}
	if len(idOrPrefix) < minPrefixLen {
		return Task{}, fmt.Errorf("task id prefix must be at least %d characters (got %d)", minPrefixLen, len(idOrPrefix))
	}

	var matches []Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return Task{}, fmt.Errorf("%w: %s (matches %d tasks)", ErrAmbiguous, idOrPrefix, len(matches))
	}
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws from the generator until it yields an id not in use,
// giving up after maxIDAttempts.
func (s *Store) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
		logger.Warn("Generated task id %q collides, regenerating", id)
	}
	logger.Error("No unique task id after %d attempts", maxIDAttempts)
	return "", ErrIDExhausted
}

// persist writes the full collection back. Failures are logged, not returned.
func (s *Store) persist() {
	data, err := Encode(s.tasks)
	if err != nil {
		logger.Error("Failed to encode tasks: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.storage.Put(ctx, s.key, data); err != nil {
		logger.Warn("Failed to persist tasks to %s: %v", s.key, err)
	}
}
