// Package mcp serves the price comparison tools over the Model Context
// Protocol (JSON-RPC 2.0, newline-delimited on stdio).
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	serverName    = "price-comparison"
	serverVersion = "1.0.0"
)

// Backend is the text-level price comparison surface
type Backend interface {
	ComparePrices(ctx context.Context, product string) string
	AvailableWebsites() string
	ShoppingRecommendation(ctx context.Context, product string) string
	SourceStats() string
	PriceHistory(ctx context.Context, product string, limit int64) string
}

// Server handles MCP protocol requests
type Server struct {
	backend        Backend
	historyEnabled bool
	log            *zap.Logger
}

// NewServer creates a new MCP server. historyEnabled controls whether the
// price history tool is advertised.
func NewServer(backend Backend, historyEnabled bool, log *zap.Logger) *Server {
	return &Server{
		backend:        backend,
		historyEnabled: historyEnabled,
		log:            log.Named("mcp"),
	}
}

// Serve reads one request per line from r and writes responses to w until r
// is exhausted or ctx is done. Tool calls run concurrently so a slow
// comparison does not hold up ping or other requests; responses are written
// one at a time. Only protocol JSON is written to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go readLines(ctx, r, lines, readErr)

	out := &responseWriter{enc: json.NewEncoder(w)}
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			wg.Wait()
			if err == io.EOF {
				return out.err()
			}
			return eris.Wrap(err, "failed to read request")
		case line := <-lines:
			if ctx.Err() != nil {
				return nil
			}
			req, parseErr := s.parseLine(line)
			if req == nil || req.Method != "tools/call" {
				if req != nil {
					out.write(s.respond(ctx, req))
				} else {
					out.write(parseErr)
				}
				if err := out.err(); err != nil {
					return err
				}
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				out.write(s.respond(ctx, req))
			}()
		}
	}
}

// readLines feeds non-blank lines from r until a read fails. The final error
// (io.EOF on a clean close) is delivered after every line.
func readLines(ctx context.Context, r io.Reader, lines chan<- []byte, readErr chan<- error) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if line = bytes.TrimSpace(line); len(line) > 0 {
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

// responseWriter serializes encoder access and keeps the first write error
type responseWriter struct {
	mu       sync.Mutex
	enc      *json.Encoder
	writeErr error
}

func (rw *responseWriter) write(resp *Response) {
	if resp == nil {
		return
	}
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.writeErr != nil {
		return
	}
	if err := rw.enc.Encode(resp); err != nil {
		rw.writeErr = eris.Wrap(err, "failed to encode response")
	}
}

func (rw *responseWriter) err() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.writeErr
}

// parseLine decodes one request. Unparseable input yields a nil request and
// the parse error response to send instead.
func (s *Server) parseLine(line []byte) (*Request, *Response) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("Failed to parse request", zap.Error(err))
		// JSON-RPC requires ID to be string or number, not null
		return nil, s.errorResponse(0, ParseError, "Failed to parse request")
	}
	return &req, nil
}

func (s *Server) respond(ctx context.Context, req *Request) *Response {
	resp := s.HandleRequest(ctx, req)
	// Notifications (no ID) never get a response
	if req.ID == nil {
		return nil
	}
	return resp
}

// HandleRequest processes an MCP request and returns a response.
// Returns nil for notifications with unknown methods.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	id := req.ID

	if req.JSONRPC != jsonRPCVersion {
		return s.errorResponse(id, InvalidRequest, "jsonrpc must be \"2.0\"")
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(id)
	case "tools/list":
		return s.successResult(id, map[string]any{"tools": getAllTools(s.historyEnabled)})
	case "tools/call":
		return s.handleToolsCall(ctx, req, id)
	case "ping":
		return s.successResult(id, map[string]any{})
	}

	if id == nil {
		return nil
	}
	return s.errorResponse(id, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
}

func (s *Server) handleInitialize(id any) *Response {
	return s.successResult(id, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request, id any) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid parameters")
	}

	s.log.Info("Tool call", zap.String("tool", params.Name))
	return s.routeToolCall(ctx, id, params.Name, params.Arguments)
}

func (s *Server) successResult(id, result any) *Response {
	data, err := json.Marshal(result)
	if err != nil {
		return s.errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  json.RawMessage(data),
	}
}

func (s *Server) textResponse(id any, text string) *Response {
	return s.successResult(id, ToolResult{
		Content: []TextContent{{Type: "text", Text: text}},
	})
}

func (s *Server) errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}
