// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Hearth household tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fenwick/hearth/internal/apperr"
	"github.com/fenwick/hearth/internal/household"
)

// Server wraps the MCP server with Hearth tools.
type Server struct {
	mcp *server.MCPServer
	svc *household.Service
}

// New creates a new MCP server with all Hearth tools registered.
func New(svc *household.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Hearth",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_people",
		mcp.WithDescription("List every person in the household with their ids."),
	), s.listPeople)

	s.mcp.AddTool(mcp.NewTool("get_person",
		mcp.WithDescription("Look a person up by first name, including their children and star charts."),
		mcp.WithString("first_name", mcp.Required(), mcp.Description("First name of the person")),
	), s.getPerson)

	s.mcp.AddTool(mcp.NewTool("create_person",
		mcp.WithDescription("Add a person to the household."),
		mcp.WithString("first_name", mcp.Required(), mcp.Description("First name")),
		mcp.WithString("last_name", mcp.Description("Last name (optional)")),
	), s.createPerson)

	s.mcp.AddTool(mcp.NewTool("list_star_charts",
		mcp.WithDescription("List every star chart with its owner and progress."),
	), s.listStarCharts)

	s.mcp.AddTool(mcp.NewTool("create_star_chart",
		mcp.WithDescription("Create a star chart for an existing person."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Chart name, e.g. chores")),
		mcp.WithString("description", mcp.Description("Chart description")),
		mcp.WithNumber("person_id", mcp.Required(), mcp.Description("Id of the owning person")),
		mcp.WithNumber("star_total", mcp.Description("Goal number of stars (default 10)")),
	), s.createStarChart)

	s.mcp.AddTool(mcp.NewTool("award_stars",
		mcp.WithDescription("Adjust a star chart's count by a signed delta."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Star chart id")),
		mcp.WithNumber("delta", mcp.Required(), mcp.Description("Stars to add (negative to remove)")),
	), s.awardStars)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPeople(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	people, err := s.svc.ListPeople(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(people, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getPerson(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	firstName, err := req.RequireString("first_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	person, err := s.svc.GetPerson(ctx, firstName)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no person named %q", firstName)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(person, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createPerson(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	firstName, err := req.RequireString("first_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lastName := req.GetString("last_name", "")

	id, err := s.svc.CreatePerson(ctx, firstName, lastName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created person %d: %s %s", id, firstName, lastName)), nil
}

func (s *Server) listStarCharts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	charts, err := s.svc.ListStarCharts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(charts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createStarChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	personID, err := req.RequireInt("person_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	description := req.GetString("description", "")
	total := req.GetInt("star_total", 10)

	id, err := s.svc.CreateStarChart(ctx, name, description, int64(personID), 0, total)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no person with id %d", personID)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created star chart %d: %s", id, name)), nil
}

func (s *Server) awardStars(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	delta, err := req.RequireInt("delta")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.svc.IncrementStarChart(ctx, int64(id), delta); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no star chart with id %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	chart, err := s.svc.GetStarChart(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s now has %d / %d stars", chart.Name, chart.StarCount, chart.StarTotal)), nil
}
