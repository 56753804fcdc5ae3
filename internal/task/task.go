// Package task holds the task collection and the rules for mutating it.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Task is a single to-do item. Only Completed changes after creation.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ShortID is the leading part of the ID shown in listings.
func (t Task) ShortID() string {
	if len(t.ID) <= shortIDLen {
		return t.ID
	}
	return t.ID[:shortIDLen]
}

const shortIDLen = 8

// Filter selects which tasks are visible.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	default:
		return "all"
	}
}

// ParseFilter accepts "all" and "active" (empty means all).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	default:
		return FilterAll, fmt.Errorf("invalid filter: %s (must be all or active)", s)
	}
}

// Encode serializes tasks to the persisted layout: a JSON array of
// {"id","text","completed"} objects in collection order.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Decode parses the persisted layout. A value that is not an array of
// well-formed tasks with unique ids is rejected.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task %d: missing id", i)
		}
		if strings.TrimSpace(t.Text) == "" {
			return nil, fmt.Errorf("task %d: empty text", i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %s", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}

var (
	// ErrEmptyTask is returned by AddTask when the draft is blank.
	ErrEmptyTask = errors.New(EmptyTaskMessage)
	// ErrNotFound is returned by Find when nothing matches.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned by Find when a prefix matches several tasks.
	ErrAmbiguous = errors.New("ambiguous task id")
	// ErrIDExhausted is returned by AddTask when no unused id turns up.
	ErrIDExhausted = errors.New("could not generate a unique task id")
)

// EmptyTaskMessage is the user-visible error for a blank add.
const EmptyTaskMessage = "Task cannot be empty"
