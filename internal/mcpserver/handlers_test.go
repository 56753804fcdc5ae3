package mcpserver

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/taskr/internal/storage"
	"github.com/mark3labs/taskr/internal/task"
)

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) string {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s returned error: %v", name, err)
	}
	if result == nil {
		t.Fatalf("%s returned nil result", name)
	}
	return extractText(result)
}

func TestHandleTaskAdd_Success(t *testing.T) {
	srv, store := newTestServer(t)

	text := call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "  Buy milk  "})

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
	if !strings.Contains(text, tasks[0].ID) {
		t.Errorf("result should carry the new id, got %q", text)
	}
	if store.Draft() != "" {
		t.Errorf("draft should be cleared, got %q", store.Draft())
	}
}

func TestHandleTaskAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no arguments", nil, "error: no arguments provided"},
		{"missing text", map[string]any{}, "error: missing 'text' parameter"},
		{"wrong type", map[string]any{"text": 42}, "error: missing 'text' parameter"},
		{"empty text", map[string]any{"text": ""}, "error: " + task.EmptyTaskMessage},
		{"whitespace text", map[string]any{"text": " \t "}, "error: " + task.EmptyTaskMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := newTestServer(t)

			if got := call(t, srv.handleTaskAdd, "task-add", tt.args); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(store.Tasks()) != 0 {
				t.Error("failed add must not change the collection")
			}
			if store.ErrorMessage() != "" || store.Draft() != "" {
				t.Error("failed add must not leave a draft or error behind")
			}
		})
	}
}

func TestHandleTaskToggle(t *testing.T) {
	srv, store := newTestServer(t)
	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "Write report"})
	id := store.Tasks()[0].ID

	text := call(t, srv.handleTaskToggle, "task-toggle", map[string]any{"id": id[:8]})
	if !strings.Contains(text, "completed") {
		t.Errorf("unexpected result: %q", text)
	}
	if !store.Tasks()[0].Completed {
		t.Error("task should be completed")
	}

	text = call(t, srv.handleTaskToggle, "task-toggle", map[string]any{"id": id})
	if !strings.Contains(text, "active") {
		t.Errorf("unexpected result: %q", text)
	}
	if store.Tasks()[0].Completed {
		t.Error("task should be active again")
	}
}

func TestHandleTaskToggle_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no arguments", nil, "error: no arguments provided"},
		{"missing id", map[string]any{}, "error: missing 'id' parameter"},
		{"blank id", map[string]any{"id": "  "}, "error: missing 'id' parameter"},
		{"unknown id", map[string]any{"id": "deadbeef"}, "error: task not found"},
		{"short prefix", map[string]any{"id": "ab"}, "error: task id prefix must be at least 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := call(t, srv.handleTaskToggle, "task-toggle", tt.args); !strings.HasPrefix(got, tt.want) {
				t.Errorf("got %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestHandleTaskDelete(t *testing.T) {
	srv, store := newTestServer(t)
	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "One"})
	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "Two"})
	first := store.Tasks()[0]

	text := call(t, srv.handleTaskDelete, "task-delete", map[string]any{"id": first.ID})
	if !strings.Contains(text, "Deleted task") {
		t.Errorf("unexpected result: %q", text)
	}

	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Two" {
		t.Errorf("unexpected tasks after delete: %+v", tasks)
	}

	if got := call(t, srv.handleTaskDelete, "task-delete", map[string]any{"id": first.ID}); !strings.HasPrefix(got, "error:") {
		t.Errorf("second delete should fail, got %q", got)
	}
}

func TestHandleTaskList(t *testing.T) {
	srv, store := newTestServer(t)

	if got := call(t, srv.handleTaskList, "task-list", nil); got != "No tasks" {
		t.Errorf("empty list: got %q", got)
	}

	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "One"})
	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "Two"})
	store.ToggleTaskCompletion(store.Tasks()[0].ID)

	all := call(t, srv.handleTaskList, "task-list", map[string]any{"filter": "all"})
	lines := strings.Split(all, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[x]") || !strings.HasPrefix(lines[1], "[ ]") {
		t.Errorf("unexpected listing:\n%s", all)
	}

	active := call(t, srv.handleTaskList, "task-list", map[string]any{"filter": "active"})
	if strings.Contains(active, "One") || !strings.Contains(active, "Two") {
		t.Errorf("active listing should hide completed tasks:\n%s", active)
	}
	if store.Filter() != task.FilterAll {
		t.Error("listing must not change the store's filter")
	}

	if got := call(t, srv.handleTaskList, "task-list", map[string]any{"filter": "done"}); !strings.HasPrefix(got, "error:") {
		t.Errorf("invalid filter should fail, got %q", got)
	}
}

func TestHandlers_PersistToStorage(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	srv := New(task.Open(ctx, mem, storage.DefaultKey))

	call(t, srv.handleTaskAdd, "task-add", map[string]any{"text": "Persisted"})

	reopened := task.Open(ctx, mem, storage.DefaultKey)
	if tasks := reopened.Tasks(); len(tasks) != 1 || tasks[0].Text != "Persisted" {
		t.Errorf("unexpected tasks after reopen: %+v", tasks)
	}
}

func TestHandlers_ConcurrentCalls(t *testing.T) {
	srv, store := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := mcp.CallToolRequest{Params: mcp.CallToolParams{
				Name:      "task-add",
				Arguments: map[string]any{"text": "parallel"},
			}}
			_, _ = srv.handleTaskAdd(context.Background(), req)
		}()
	}
	wg.Wait()

	if got := len(store.Tasks()); got != 20 {
		t.Errorf("expected 20 tasks, got %d", got)
	}
}
