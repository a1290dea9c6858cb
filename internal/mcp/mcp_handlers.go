package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetCatalog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := catalog.Default()
	sections := cat.Sections()
	if id := request.GetString("section", ""); id != "" {
		section, ok := cat.Section(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section '%s'", id)), nil
		}
		sections = []schema.Section{section}
	}
	return jsonResult(sections)
}

func (h *toolHandler) handleScoreAssessment(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("answers", "")
	if raw == "" {
		return mcp.NewToolResultError("answers is required"), nil
	}
	var answers schema.Answers
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answers must be a JSON object: %v", err)), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.ExcludeUnscoredDomains = request.GetBool("exclude_unscored", cfg.ExcludeUnscoredDomains)
	respondent := schema.Respondent{Company: request.GetString("company", "")}

	assessment := core.GetAssessmentResults(cfg, h.mgr, respondent, answers)
	return jsonResult(assessment)
}

func (h *toolHandler) handleClassifyScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if score < 0 || score > 100 {
		return mcp.NewToolResultError(fmt.Sprintf("score must be between 0 and 100 (received %.2f)", score)), nil
	}
	return jsonResult(map[string]any{
		"score":   score,
		"percent": schema.RoundScore(score),
		"label":   schema.GetReadinessLabel(score),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
