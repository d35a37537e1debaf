// Package mcp exposes the verification gate as an MCP tool over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cigate/src/config"
	"cigate/src/gate"
	"cigate/src/provider"
)

// Server is the MCP server for cigate.
type Server struct {
	mcpServer *server.MCPServer
	token     string
}

// NewServer creates a new MCP server. The token is passed down to the
// provider; it is read once by the caller, never from the environment here.
func NewServer(token string) *Server {
	s := server.NewMCPServer(
		"cigate",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		token:     token,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	verifyTool := mcp.NewTool("verify_run",
		mcp.WithDescription("Verify that a GitHub Actions workflow run completed and that required jobs concluded success. Waits for an in-progress run up to the timeout. Returns the verification report and the gate's exit code (0 green, 1 not green, 2 required job missing, 3 timed out, 4 lookup/transport failure)."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to check (latest run); one of branch or run_id is required"),
		),
		mcp.WithNumber("run_id",
			mcp.Description("Explicit workflow run id; one of branch or run_id is required"),
		),
		mcp.WithString("required_jobs",
			mcp.Description("Comma-separated job names that must conclude success (default: the standard gating jobs)"),
		),
		mcp.WithNumber("timeout_secs",
			mcp.Description(fmt.Sprintf("Max seconds to wait for completion (default: %d)", config.DefaultTimeoutSecs)),
		),
		mcp.WithNumber("poll_secs",
			mcp.Description(fmt.Sprintf("Polling interval in seconds (default: %d)", config.DefaultPollSecs)),
		),
	)

	s.mcpServer.AddTool(verifyTool, s.handleVerifyRun)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleVerifyRun handles the verify_run tool call.
func (s *Server) handleVerifyRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := request.GetString("owner", "")
	repo := request.GetString("repo", "")
	if owner == "" || repo == "" {
		return mcp.NewToolResultError("owner and repo parameters are required"), nil
	}

	sel := gate.Selector{
		RunID:  int64(request.GetInt("run_id", 0)),
		Branch: request.GetString("branch", ""),
	}
	if err := sel.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	required := config.DefaultRequiredJobs()
	if raw := request.GetString("required_jobs", ""); raw != "" {
		required = required[:0]
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				required = append(required, name)
			}
		}
	}

	timeout := time.Duration(request.GetInt("timeout_secs", config.DefaultTimeoutSecs)) * time.Second
	interval := time.Duration(request.GetInt("poll_secs", config.DefaultPollSecs)) * time.Second

	prov, err := provider.Get("github", s.token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runner := gate.NewRunner(prov, provider.RepoRef{Owner: owner, Repo: repo},
		sel, required, timeout, interval)
	outcome := runner.Run(ctx)

	text, exitCode := gate.Report(outcome)
	result := fmt.Sprintf("%s\n\nexit_code=%d", text, exitCode)

	if outcome.Err != nil {
		return mcp.NewToolResultError(result), nil
	}
	return mcp.NewToolResultText(result), nil
}
