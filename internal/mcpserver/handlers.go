package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/taskr/internal/task"
)

// handleTaskAdd adds the given text as a new task.
func (s *Server) handleTaskAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultText("error: missing 'text' parameter"), nil
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.store.SetDraft(text)
	t, err := s.store.AddTask()
	if err != nil {
		msg := s.store.ErrorMessage()
		s.store.SetDraft("")
		return mcp.NewToolResultText("error: " + msg), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added task %s: %s", t.ID, t.Text)), nil
}

// handleTaskToggle flips the completed flag of one task.
func (s *Server) handleTaskToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	t, err := s.store.Find(id)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	s.store.ToggleTaskCompletion(t.ID)

	state := "completed"
	if t.Completed {
		state = "active"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Task %s marked %s", t.ID, state)), nil
}

// handleTaskDelete removes one task.
func (s *Server) handleTaskDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	t, err := s.store.Find(id)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	s.store.DeleteTask(t.ID)

	return mcp.NewToolResultText(fmt.Sprintf("Deleted task %s: %s", t.ID, t.Text)), nil
}

// handleTaskList lists tasks through the requested filter. The store's own
// filter is restored afterwards.
func (s *Server) handleTaskList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := task.FilterAll
	if raw, ok := request.GetArguments()["filter"].(string); ok {
		f, err := task.ParseFilter(raw)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
		filter = f
	}

	s.storeMu.Lock()
	prev := s.store.Filter()
	s.store.SetFilter(filter)
	tasks := s.store.VisibleTasks()
	s.store.SetFilter(prev)
	s.storeMu.Unlock()

	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks"), nil
	}

	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", mark, t.ID, t.Text))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// requireID extracts the id argument or returns an error result.
func requireID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	args := request.GetArguments()
	if args == nil {
		return "", mcp.NewToolResultText("error: no arguments provided")
	}
	id, ok := args["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", mcp.NewToolResultText("error: missing 'id' parameter")
	}
	return id, nil
}
