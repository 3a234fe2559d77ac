package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peoplelens/peoplelens-go/profile"
)

const defaultWaitSeconds = 30

// SearchHandler exposes the search_profile tool.
type SearchHandler struct {
	sdk *profile.SDK
}

func NewSearchHandler(s *profile.SDK) *SearchHandler {
	return &SearchHandler{sdk: s}
}

// RegisterTools registers the search_profile tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("search_profile",
		mcp.WithDescription("Search for a person's profile. Blocks until the backend finishes the search or wait_seconds elapses. Results include:\n • info – the matched profile document.\n • recommendations – related profiles the backend suggests."),
		mcp.WithString("full_name", mcp.Description("Person's full name")),
		mcp.WithString("email", mcp.Description("Person's email address")),
		mcp.WithString("company", mcp.Description("Current company")),
		mcp.WithString("location", mcp.Description("City or region")),
		mcp.WithNumber("wait_seconds", mcp.Description("How long to wait for the search to finish (1-120, default 30)")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	str := func(key string) string {
		v, _ := args[key].(string)
		return v
	}

	wait := float64(defaultWaitSeconds)
	if v, ok := args["wait_seconds"].(float64); ok {
		if v >= 1 && v <= 120 {
			wait = v
		}
	}

	prof, err := sh.sdk.Search(ctx, profile.SearchParams{
		FullName: str("full_name"),
		Email:    str("email"),
		Company:  str("company"),
		Location: str("location"),
	}, time.Duration(wait*float64(time.Second)))
	if err != nil {
		if pending, ok := profile.IsNotFoundYet(err); ok {
			return mcp.NewToolResultError(fmt.Sprintf("search %s still running; call again later", pending.ID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	// Build payload preserving the raw JSON fields.
	payload := map[string]interface{}{
		"info":            json.RawMessage(prof.Info),
		"recommendations": json.RawMessage(prof.Recommendations),
	}
	b, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
