package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/comparer"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleScorePatch handles the score_patch tool
func (h *HandlerSet) HandleScorePatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req := domain.ScoreRequest{
		Settings:     h.deps.Settings(),
		OutputWriter: io.Discard,
	}
	applySettingArgs(&req.Settings, args)

	if src, ok := args["original_source"].(string); ok {
		req.Original = domain.Snippet{Name: "original", Source: []byte(src)}
	} else if path, ok := args["original"].(string); ok {
		if errResult := checkPath(path); errResult != nil {
			return errResult, nil
		}
		req.OriginalPath = path
	} else {
		return mcp.NewToolResultError("original or original_source is required"), nil
	}

	if src, ok := args["patched_source"].(string); ok {
		req.Patched = domain.Snippet{Name: "patched", Source: []byte(src)}
	} else if path, ok := args["patched"].(string); ok {
		if errResult := checkPath(path); errResult != nil {
			return errResult, nil
		}
		req.PatchedPath = path
	} else {
		return mcp.NewToolResultError("patched or patched_source is required"), nil
	}

	uc, err := h.deps.BuildScoreUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create scorer: %v", err)), nil
	}

	result, err := uc.Score(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(result)
}

// HandleRankPatches handles the rank_patches tool
func (h *HandlerSet) HandleRankPatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	original, ok := args["original"].(string)
	if !ok {
		return mcp.NewToolResultError("original parameter is required and must be a string"), nil
	}
	if errResult := checkPath(original); errResult != nil {
		return errResult, nil
	}

	var candidates []string
	if raw, ok := args["candidates"].([]interface{}); ok {
		for _, c := range raw {
			if s, ok := c.(string); ok {
				candidates = append(candidates, s)
			}
		}
	}
	if len(candidates) == 0 {
		return mcp.NewToolResultError("candidates must be a non-empty array of paths"), nil
	}
	for _, c := range candidates {
		if errResult := checkPath(c); errResult != nil {
			return errResult, nil
		}
	}

	req := domain.RankRequest{
		OriginalPath:   original,
		CandidatePaths: candidates,
		Settings:       h.deps.Settings(),
		OutputWriter:   io.Discard,
	}
	applySettingArgs(&req.Settings, args)
	if bulk, ok := args["bulk"].(bool); ok {
		req.Settings.Bulk = bulk
	}

	uc, err := h.deps.BuildRankUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create ranker: %v", err)), nil
	}

	result, err := uc.Rank(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(result)
}

// HandleCompareVectors handles the compare_vectors tool
func (h *HandlerSet) HandleCompareVectors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	opts := h.deps.Settings().Options
	req := domain.CompareRequest{
		Reference:   args["reference"],
		Candidates:  args["candidates"],
		Strategy:    opts.Strategy,
		MinkowskiP:  opts.MinkowskiP,
		CanberraNaN: opts.CanberraNaN,
	}
	if s, ok := args["strategy"].(string); ok && s != "" {
		req.Strategy = s
	}
	if p, ok := args["minkowski_p"].(float64); ok {
		req.MinkowskiP = p
	}
	if bulk, ok := args["bulk"].(bool); ok {
		req.Bulk = bulk
	}

	result, err := h.deps.Service().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result)
}

// HandleListStrategies handles the list_strategies tool
func (h *HandlerSet) HandleListStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"default":    comparer.DefaultStrategy,
		"strategies": comparer.Strategies(),
	})
}

// applySettingArgs overrides settings with the optional tool arguments
func applySettingArgs(settings *domain.SimilaritySettings, args map[string]interface{}) {
	if lang, ok := args["language"].(string); ok && lang != "" {
		settings.Options.Language = lang
	}
	if s, ok := args["strategy"].(string); ok && s != "" {
		settings.Options.Strategy = s
	}
	if d, ok := args["depth"].(float64); ok {
		settings.Options.Depth = int(d)
	}
}

func checkPath(path string) *mcp.CallToolResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	return nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
