package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ChrisShia/jsonlog"

	"github.com/ironsheep/pixelsum-mcp/internal/config"
	"github.com/ironsheep/pixelsum-mcp/internal/imaging"
)

// Server handles MCP protocol communication
type Server struct {
	store  *imaging.IndexStore
	logger *jsonlog.Logger
	cfg    *config.Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Version is reported in the initialize handshake. main overrides it from
// build flags.
var Version = "0.1.0"

// New creates a new MCP server instance. A nil cfg uses the defaults; a nil
// logger discards log output.
func New(cfg *config.Config, logger *jsonlog.Logger) *Server {
	if cfg == nil {
		cfg = &config.Config{
			MaxIndexes:      config.DefaultMaxIndexes,
			MaxRequestBytes: config.DefaultMaxRequestBytes,
		}
	}
	if logger == nil {
		logger = jsonlog.New(io.Discard, jsonlog.LevelInfo)
	}
	return &Server{
		store:  imaging.NewIndexStore(cfg.MaxIndexes),
		logger: logger,
		cfg:    cfg,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// errLineTooLong reports a request line longer than Config.MaxRequestBytes.
var errLineTooLong = errors.New("request line too long")

// Serve processes newline-delimited JSON-RPC requests from in until EOF,
// writing one response line per request to out.
//
// A line that is not valid JSON, or that exceeds MaxRequestBytes, is answered
// with a -32700 parse error and a null id; the session continues.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	// Pixel buffers arrive base64 encoded inside a single line.
	reader := bufio.NewReaderSize(in, 64*1024)
	encoder := json.NewEncoder(out)

	for {
		line, err := readLine(reader, s.cfg.MaxRequestBytes)
		if errors.Is(err, errLineTooLong) {
			s.logger.PrintWarning("request line too long", map[string]string{
				"limit": strconv.Itoa(s.cfg.MaxRequestBytes),
			})
			s.send(encoder, s.errorResponse(nil, -32700, "Parse error",
				fmt.Sprintf("request exceeds %d bytes", s.cfg.MaxRequestBytes)))
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.PrintWarning("failed to parse request", map[string]string{
				"error": err.Error(),
			})
			s.send(encoder, s.errorResponse(nil, -32700, "Parse error", err.Error()))
			continue
		}

		if s.cfg.Debug {
			s.logger.PrintInfo("request", map[string]string{
				"method": req.Method,
				"id":     fmt.Sprint(req.ID),
			})
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.send(encoder, resp)
		}
	}
}

func (s *Server) send(encoder *json.Encoder, resp *MCPResponse) {
	if err := encoder.Encode(resp); err != nil {
		s.logger.PrintError(err, map[string]string{"stage": "encode", "id": fmt.Sprint(resp.ID)})
	}
}

// readLine returns the next line without its line terminator. A line longer
// than limit is consumed up to its newline and reported as errLineTooLong, so
// the reader stays positioned at the following request. io.EOF is returned
// only once no bytes remain.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(bytes.TrimRight(line, "\r\n")) > limit {
				tooLong = true
				line = nil
			}
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && (len(line) > 0 || tooLong):
			// Last line has no terminator.
		case err != nil:
			return nil, err
		}

		if tooLong {
			return nil, errLineTooLong
		}
		return bytes.TrimRight(line, "\r\n"), nil
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	}

	// Client notifications (initialized, cancelled, ...) never get a response.
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &MCPError{
			Code:    -32601,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		},
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "pixelsum-mcp",
				"version": Version,
			},
		},
	}
}
