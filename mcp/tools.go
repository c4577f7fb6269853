package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/patchsim/internal/comparer"
)

// RegisterTools registers all patchsim MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	strategies := comparer.Names()

	// Tool 1: score_patch - similarity of one patch to its original
	s.AddTool(mcp.NewTool("score_patch",
		mcp.WithDescription("Score how structurally similar a patched code snippet is to its original"),
		mcp.WithString("original",
			mcp.Description("Path to the original source file")),
		mcp.WithString("patched",
			mcp.Description("Path to the patched source file")),
		mcp.WithString("original_source",
			mcp.Description("Original source code, used instead of the original path")),
		mcp.WithString("patched_source",
			mcp.Description("Patched source code, used instead of the patched path")),
		mcp.WithString("language",
			mcp.Enum("java", "python"),
			mcp.Description("Grammar of the snippets (default: java)")),
		mcp.WithString("strategy",
			mcp.Enum(strategies...),
			mcp.Description("Comparison strategy (default: cossim)")),
		mcp.WithNumber("depth",
			mcp.Description("Encoded tree depth 1-24 (default: 15)")),
	), h.HandleScorePatch)

	// Tool 2: rank_patches - order candidate patches by similarity
	s.AddTool(mcp.NewTool("rank_patches",
		mcp.WithDescription("Rank candidate patches by structural similarity to the original, most similar first"),
		mcp.WithString("original",
			mcp.Required(),
			mcp.Description("Path to the original source file")),
		mcp.WithArray("candidates",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Candidate files or directories holding candidates")),
		mcp.WithString("language",
			mcp.Enum("java", "python"),
			mcp.Description("Grammar of the snippets (default: java)")),
		mcp.WithString("strategy",
			mcp.Enum(strategies...),
			mcp.Description("Comparison strategy (default: cossim)")),
		mcp.WithBoolean("bulk",
			mcp.Description("Score all candidates in one batch (default: false)")),
	), h.HandleRankPatches)

	// Tool 3: compare_vectors - score precomputed vectors
	s.AddTool(mcp.NewTool("compare_vectors",
		mcp.WithDescription("Score candidate vectors against a reference vector"),
		mcp.WithArray("reference",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "number"}),
			mcp.Description("Reference vector")),
		mcp.WithArray("candidates",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "array", "items": map[string]any{"type": "number"}}),
			mcp.Description("Candidate vectors")),
		mcp.WithString("strategy",
			mcp.Enum(strategies...),
			mcp.Description("Comparison strategy (default: cossim)")),
		mcp.WithBoolean("bulk",
			mcp.Description("Score all candidates in one batch (default: false)")),
		mcp.WithNumber("minkowski_p",
			mcp.Description("Exponent of the minkowski strategy (default: 1.5)")),
	), h.HandleCompareVectors)

	// Tool 4: list_strategies - registered comparison strategies
	s.AddTool(mcp.NewTool("list_strategies",
		mcp.WithDescription("List the available comparison strategies with their aliases and score ranges"),
	), h.HandleListStrategies)
}
