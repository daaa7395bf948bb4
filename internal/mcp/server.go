package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TacticalFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("TacticalFit 8-week training program tracker. Look up the workout scheduled on any date, mark exercises complete, and review weekly progress. Dates are YYYY-MM-DD; omitted dates mean today."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolToggleExercise, Handler: h.toggleExercise},
		server.ServerTool{Tool: toolGetSchedule, Handler: h.getSchedule},
		server.ServerTool{Tool: toolGetWeekProgress, Handler: h.getWeekProgress},
		server.ServerTool{Tool: toolSetStartDate, Handler: h.setStartDate},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.today},
		server.ServerResource{Resource: resProgram, Handler: h.program},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resToday = mcp.NewResource(
	"tacticalfit://today",
	"Today's Workout",
	mcp.WithResourceDescription("The workout scheduled for today with per-exercise prescriptions and completion"),
	mcp.WithMIMEType("application/json"),
)

var resProgram = mcp.NewResource(
	"tacticalfit://program",
	"Program Catalog",
	mcp.WithResourceDescription("All daily workout plans and the weekly rotation for both phases"),
	mcp.WithMIMEType("application/json"),
)
