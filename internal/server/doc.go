// Package server implements the MCP (Model Context Protocol) server for pixel
// region queries.
//
// This package provides a JSON-RPC 2.0 server that exposes constant-time region
// aggregates over 8-bit pixel grids through the MCP protocol. A client uploads
// a raw pixel buffer once, then asks any number of rectangle questions about it.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Notifications (methods under "notifications/") are accepted silently.
//
// # Available Tools
//
// Index Management:
//   - index_create: Build an index from a raw gray or RGBA buffer
//   - index_info: Summary of one index
//   - index_list: Summaries of all indexes
//   - index_drop: Remove an index
//
// Region Queries:
//   - region_sum: Sum of pixel values
//   - region_average: Sum over the requested (unclipped) area
//   - region_nonzero_count: Count of non-zero pixels
//   - region_nonzero_average: Sum over the non-zero count
//   - region_stats: All of the above at once
//
// Analysis Helpers:
//   - region_compare: Compare two regions
//
// # Index Store
//
// Built indexes are kept in memory by name for the lifetime of the process,
// up to PIXELSUM_MCP_MAX_INDEXES at once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A line that is not valid JSON, or longer than PIXELSUM_MCP_MAX_REQUEST_BYTES,
// is answered with -32700 and a null id, and the session continues.
//
// Region queries never fail once the index exists; coordinates of any sign and
// magnitude are accepted.
//
// # Logging
//
// Logs are JSON lines on stderr, since stdout carries the protocol.
package server
