package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers the task tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("task-add",
			mcp.WithDescription("Add a new active task to the list"),
			mcp.WithString("text", mcp.Required(),
				mcp.Description("Task text; surrounding whitespace is trimmed")),
		),
		s.handleTaskAdd,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-toggle",
			mcp.WithDescription("Flip a task between active and completed"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Task id or a unique prefix of at least 4 characters")),
		),
		s.handleTaskToggle,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-delete",
			mcp.WithDescription("Remove a task from the list"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Task id or a unique prefix of at least 4 characters")),
		),
		s.handleTaskDelete,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-list",
			mcp.WithDescription("List tasks in stored order"),
			mcp.WithString("filter",
				mcp.Description("all (default) or active to hide completed tasks"),
				mcp.Enum("all", "active")),
		),
		s.handleTaskList,
	)
}
