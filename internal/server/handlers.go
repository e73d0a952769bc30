package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ironsheep/pixelsum-mcp/internal/imaging"
	"github.com/ironsheep/pixelsum-mcp/internal/pixelsum"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "index_create", "region_sum").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			s.logger.PrintInfo("tool failed", map[string]string{
				"tool":  params.Name,
				"error": err.Error(),
			})
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the named index in the store
//  4. Calls the appropriate pixelsum/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Index Management
	case "index_create":
		return s.handleIndexCreate(args)
	case "index_info":
		return s.handleIndexInfo(args)
	case "index_list":
		return s.handleIndexList(args)
	case "index_drop":
		return s.handleIndexDrop(args)

	// Region Queries
	case "region_sum":
		return s.handleRegionSum(args)
	case "region_average":
		return s.handleRegionAverage(args)
	case "region_nonzero_count":
		return s.handleRegionNonZeroCount(args)
	case "region_nonzero_average":
		return s.handleRegionNonZeroAverage(args)
	case "region_stats":
		return s.handleRegionStats(args)

	// Analysis Helpers
	case "region_compare":
		return s.handleRegionCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Index Management Handlers ===

type indexCreateArgs struct {
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixelsBase64 string `json:"pixels_base64"`
	Channels     int    `json:"channels"`
	GrayMode     string `json:"gray_mode"`
	Threshold    *int   `json:"threshold"`
}

func (s *Server) handleIndexCreate(args json.RawMessage) (interface{}, error) {
	var a indexCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, imaging.ErrEmptyName
	}
	if a.Channels == 0 {
		a.Channels = 1
	}
	threshold := 128
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be in 0-255, got %d", threshold)
	}
	mode, err := imaging.ParseGrayMode(a.GrayMode)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(a.PixelsBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pixels_base64: %w", err)
	}

	gray, err := imaging.ToGray(raw, a.Width, a.Height, a.Channels, mode, uint8(threshold))
	if err != nil {
		return nil, err
	}

	ix, err := pixelsum.New(gray, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(a.Name, ix); err != nil {
		return nil, err
	}

	s.logger.PrintInfo("index created", map[string]string{
		"name":     a.Name,
		"width":    strconv.Itoa(a.Width),
		"height":   strconv.Itoa(a.Height),
		"channels": strconv.Itoa(a.Channels),
		"mode":     string(mode),
	})

	return imaging.DescribeIndex(a.Name, ix), nil
}

type indexNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleIndexInfo(args json.RawMessage) (interface{}, error) {
	var a indexNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ix, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.DescribeIndex(a.Name, ix), nil
}

type indexListResult struct {
	Indexes  []*imaging.IndexInfo `json:"indexes"`
	Count    int                  `json:"count"`
	Capacity int                  `json:"capacity"`
}

func (s *Server) handleIndexList(args json.RawMessage) (interface{}, error) {
	infos := make([]*imaging.IndexInfo, 0)
	for _, name := range s.store.Names() {
		ix, err := s.store.Get(name)
		if errors.Is(err, imaging.ErrIndexNotFound) {
			// Dropped between Names and Get.
			continue
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, imaging.DescribeIndex(name, ix))
	}
	return &indexListResult{
		Indexes:  infos,
		Count:    len(infos),
		Capacity: s.store.Capacity(),
	}, nil
}

type indexDropResult struct {
	Name    string `json:"name"`
	Dropped bool   `json:"dropped"`
}

func (s *Server) handleIndexDrop(args json.RawMessage) (interface{}, error) {
	var a indexNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	dropped := s.store.Evict(a.Name)
	if dropped {
		s.logger.PrintInfo("index dropped", map[string]string{"name": a.Name})
	}
	return &indexDropResult{Name: a.Name, Dropped: dropped}, nil
}

// === Region Query Handlers ===

type regionQueryArgs struct {
	Name string `json:"name"`
	X0   int    `json:"x0"`
	Y0   int    `json:"y0"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
}

func (a regionQueryArgs) region() imaging.Region {
	return imaging.Region{X0: a.X0, Y0: a.Y0, X1: a.X1, Y1: a.Y1}
}

// loadRegionQuery decodes the shared region arguments and resolves the index.
func (s *Server) loadRegionQuery(args json.RawMessage) (*pixelsum.Index, regionQueryArgs, error) {
	var a regionQueryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, a, err
	}
	ix, err := s.store.Get(a.Name)
	if err != nil {
		return nil, a, err
	}
	return ix, a, nil
}

type regionSumResult struct {
	Name   string         `json:"name"`
	Region imaging.Region `json:"region"`
	Sum    uint32         `json:"sum"`
}

func (s *Server) handleRegionSum(args json.RawMessage) (interface{}, error) {
	ix, a, err := s.loadRegionQuery(args)
	if err != nil {
		return nil, err
	}
	return &regionSumResult{
		Name:   a.Name,
		Region: a.region(),
		Sum:    ix.PixelSum(a.X0, a.Y0, a.X1, a.Y1),
	}, nil
}

type regionAverageResult struct {
	Name        string         `json:"name"`
	Region      imaging.Region `json:"region"`
	Average     float64        `json:"average"`
	NominalArea float64        `json:"nominal_area"`
}

func (s *Server) handleRegionAverage(args json.RawMessage) (interface{}, error) {
	ix, a, err := s.loadRegionQuery(args)
	if err != nil {
		return nil, err
	}
	return &regionAverageResult{
		Name:        a.Name,
		Region:      a.region(),
		Average:     ix.PixelAverage(a.X0, a.Y0, a.X1, a.Y1),
		NominalArea: pixelsum.NominalArea(a.X0, a.Y0, a.X1, a.Y1),
	}, nil
}

type regionNonZeroCountResult struct {
	Name         string         `json:"name"`
	Region       imaging.Region `json:"region"`
	NonZeroCount int            `json:"nonzero_count"`
}

func (s *Server) handleRegionNonZeroCount(args json.RawMessage) (interface{}, error) {
	ix, a, err := s.loadRegionQuery(args)
	if err != nil {
		return nil, err
	}
	return &regionNonZeroCountResult{
		Name:         a.Name,
		Region:       a.region(),
		NonZeroCount: ix.NonZeroCount(a.X0, a.Y0, a.X1, a.Y1),
	}, nil
}

type regionNonZeroAverageResult struct {
	Name           string         `json:"name"`
	Region         imaging.Region `json:"region"`
	NonZeroAverage float64        `json:"nonzero_average"`
}

func (s *Server) handleRegionNonZeroAverage(args json.RawMessage) (interface{}, error) {
	ix, a, err := s.loadRegionQuery(args)
	if err != nil {
		return nil, err
	}
	return &regionNonZeroAverageResult{
		Name:           a.Name,
		Region:         a.region(),
		NonZeroAverage: ix.NonZeroAverage(a.X0, a.Y0, a.X1, a.Y1),
	}, nil
}

func (s *Server) handleRegionStats(args json.RawMessage) (interface{}, error) {
	ix, a, err := s.loadRegionQuery(args)
	if err != nil {
		return nil, err
	}
	return imaging.RegionStats(ix, a.region()), nil
}

// === Analysis Helper Handlers ===

type regionCompareArgs struct {
	Name    string         `json:"name"`
	Region1 imaging.Region `json:"region1"`
	Region2 imaging.Region `json:"region2"`
}

func (s *Server) handleRegionCompare(args json.RawMessage) (interface{}, error) {
	var a regionCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ix, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(ix, a.Region1, a.Region2), nil
}
