// Package mcpserver exposes the dispatch-planning workflow as a set of
// schema-validated MCP tools over streamable HTTP.
package mcpserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/logger"
)

// Config defines the listen address of the tool server.
type Config struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8090"
	}
}

// Server wires the dispatch service to the MCP tool surface.
type Server struct {
	svc      *dispatch.Service
	log      logger.Logger
	validate *validator.Validate
}

// New creates a Server over the given dispatch service.
func New(svc *dispatch.Service, log logger.Logger) *Server {
	return &Server{svc: svc, log: log, validate: validator.New()}
}

// MCPServer builds the MCP server with all five dispatch tools registered.
func (s *Server) MCPServer() *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "fieldops-dispatch",
		Title:   "FieldOps Dispatch",
		Version: "1.0.0",
	}
	server := mcp.NewServer(impl, &mcp.ServerOptions{HasTools: true})

	mcp.AddTool(server, &mcp.Tool{
		Name: "list-new-assignments",
		Description: "Use this first for dispatch intake. Returns unassigned, recently created work orders " +
			"(default: status=New and created in last 24 hours), optionally filtered by priority/region/team. " +
			"Output includes assignment IDs, site, SLA due, required skills, status, and coordinates for downstream tools.",
	}, s.listNewAssignments)

	mcp.AddTool(server, &mcp.Tool{
		Name: "show-assignments-on-map",
		Description: "Render assignment pins on a map view. Pass selected assignmentIds (or all returned IDs) to " +
			"visualize location and inspect details. Read-only; does not mutate dispatch state.",
	}, s.showAssignmentsOnMap)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get-available-technicians",
		Description: "Return currently available technicians and their dispatch metadata for planning, optionally " +
			"filtered by region. Output includes technician IDs, skills, current location, rating and shift.",
	}, s.getAvailableTechnicians)

	mcp.AddTool(server, &mcp.Tool{
		Name: "create-dispatch-plan",
		Description: "Renders a review-ready dispatch plan from externally chosen assignment-technician pairings. " +
			"Each planItem requires assignmentId, technicianId and etaMinutes; reason, skillMatch and distanceKm are optional. " +
			"This server does not compute or alter the pairing; it validates and enriches the mapping provided in planItems.",
	}, s.createDispatchPlan)

	mcp.AddTool(server, &mcp.Tool{
		Name: "commit-assignments",
		Description: "Commit a reviewed dispatch plan after explicit user confirmation. Input must include final plan " +
			"rows (assignmentId + technicianId + etaMinutes), including any manual overrides. Returns a confirmation " +
			"summary and per-assignment dispatch records. Do not call before create-dispatch-plan and user confirmation.",
	}, s.commitAssignments)

	return server
}

// Handler returns the HTTP handler serving the MCP endpoint and a health
// probe.
func (s *Server) Handler() http.Handler {
	server := s.MCPServer()
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) checkInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

func textResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
