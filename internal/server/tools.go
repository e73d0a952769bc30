package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes one query rectangle.
func regionSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x0": map[string]interface{}{"type": "integer"},
			"y0": map[string]interface{}{"type": "integer"},
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x0", "y0", "x1", "y1"},
	}
}

// regionQueryTool builds the schema shared by the single-aggregate tools.
func regionQueryTool(name, description string) Tool {
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of an index created with index_create",
				},
				"x0": map[string]interface{}{"type": "integer", "description": "First corner X (inclusive, any sign)"},
				"y0": map[string]interface{}{"type": "integer", "description": "First corner Y (inclusive, any sign)"},
				"x1": map[string]interface{}{"type": "integer", "description": "Second corner X (inclusive, any sign)"},
				"y1": map[string]interface{}{"type": "integer", "description": "Second corner Y (inclusive, any sign)"},
			},
			"required": []string{"name", "x0", "y0", "x1", "y1"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Index Management
		{
			Name:        "index_create",
			Description: "Build a region index from a raw pixel buffer (no image file format). Every later region query against it runs in constant time.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name to store the index under. Reusing a name replaces the old index.",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Grid width in pixels (1-4095)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Grid height in pixels (1-4095)",
					},
					"pixels_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 of width*height*channels raw bytes, row-major",
					},
					"channels": map[string]interface{}{
						"type":        "integer",
						"enum":        []int{1, 4},
						"description": "Bytes per pixel: 1 (gray) or 4 (RGBA). Default 1",
						"default":     1,
					},
					"gray_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"luma", "lightness", "threshold"},
						"description": "How RGBA is reduced to gray. threshold also applies to gray input. Default luma",
						"default":     "luma",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Cut-off level (0-255) for gray_mode=threshold. Default 128",
						"default":     128,
					},
				},
				"required": []string{"name", "width", "height", "pixels_base64"},
			},
		},
		{
			Name:        "index_info",
			Description: "Get dimensions, total sum, non-zero pixel count and mean of a stored index.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the index",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "index_list",
			Description: "List every stored index with its summary.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "index_drop",
			Description: "Remove a stored index and free its memory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the index",
					},
				},
				"required": []string{"name"},
			},
		},

		// Region Queries
		regionQueryTool("region_sum",
			"Sum of pixel values in the inclusive rectangle between two corners. Corners may be in any order and may lie outside the grid."),
		regionQueryTool("region_average",
			"Pixel sum divided by the requested rectangle area (|x1-x0|+1)*(|y1-y0|+1). The area is not clipped to the grid."),
		regionQueryTool("region_nonzero_count",
			"Number of non-zero pixels in the inclusive rectangle."),
		regionQueryTool("region_nonzero_average",
			"Pixel sum divided by the non-zero pixel count of the rectangle; 0 when there are no non-zero pixels."),
		regionQueryTool("region_stats",
			"All region aggregates (sum, average, non-zero count, non-zero average, nominal area) in one call."),

		// Analysis Helpers
		{
			Name:        "region_compare",
			Description: "Compare the aggregates of two regions of the same index.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the index",
					},
					"region1": regionSchema("First region, inclusive corners"),
					"region2": regionSchema("Second region, inclusive corners"),
				},
				"required": []string{"name", "region1", "region2"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
