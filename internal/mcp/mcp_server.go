// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Readiness MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Readiness Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_catalog ---
	s.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("List the SOC 2 readiness questionnaire: sections, question IDs, controls and accepted answers."),
		mcp.WithString("section", mcp.Description("Section ID to return (defaults to every section)."),
			mcp.Enum("user-info", "security", "availability", "processing-integrity", "confidentiality", "privacy")),
	), h.handleGetCatalog)

	// --- 2. Tool: score_assessment ---
	s.AddTool(mcp.NewTool("score_assessment",
		mcp.WithDescription("Score answers to the readiness questionnaire. Unanswered controls are skipped."),
		mcp.WithString("answers", mcp.Description("JSON object mapping question IDs to answers, e.g. {\"encryption_1\": \"Both\"}."), mcp.Required()),
		mcp.WithString("company", mcp.Description("Company being assessed, recorded in history.")),
		mcp.WithBoolean("exclude_unscored", mcp.Description("Leave domains without any answered control out of the overall score.")),
	), h.handleScoreAssessment)

	// --- 3. Tool: classify_score ---
	s.AddTool(mcp.NewTool("classify_score",
		mcp.WithDescription("Classify a score from 0 to 100 into its readiness label."),
		mcp.WithNumber("score", mcp.Description("Score between 0 and 100."), mcp.Required()),
	), h.handleClassifyScore)

	return s
}

// StartMCPServer starts the Readiness MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
