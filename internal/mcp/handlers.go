package mcp

import (
	"context"
	"encoding/json"
	"strings"
)

type productArgs struct {
	ProductName string `json:"product_name"`
	Limit       int64  `json:"limit"`
}

func (s *Server) routeToolCall(ctx context.Context, id any, name string, arguments json.RawMessage) *Response {
	switch name {
	case toolComparePrices:
		return s.handleComparePrices(ctx, id, arguments)
	case toolAvailableWebsites:
		return s.textResponse(id, s.backend.AvailableWebsites())
	case toolRecommendation:
		return s.handleRecommendation(ctx, id, arguments)
	case toolSourceStats:
		return s.textResponse(id, s.backend.SourceStats())
	case toolPriceHistory:
		if s.historyEnabled {
			return s.handlePriceHistory(ctx, id, arguments)
		}
	}
	return s.errorResponse(id, MethodNotFound, "Unknown tool: "+name)
}

func (s *Server) handleComparePrices(ctx context.Context, id any, arguments json.RawMessage) *Response {
	args, resp := s.productArguments(id, arguments)
	if resp != nil {
		return resp
	}
	return s.textResponse(id, s.backend.ComparePrices(ctx, args.ProductName))
}

func (s *Server) handleRecommendation(ctx context.Context, id any, arguments json.RawMessage) *Response {
	args, resp := s.productArguments(id, arguments)
	if resp != nil {
		return resp
	}
	return s.textResponse(id, s.backend.ShoppingRecommendation(ctx, args.ProductName))
}

func (s *Server) handlePriceHistory(ctx context.Context, id any, arguments json.RawMessage) *Response {
	args, resp := s.productArguments(id, arguments)
	if resp != nil {
		return resp
	}
	return s.textResponse(id, s.backend.PriceHistory(ctx, args.ProductName, args.Limit))
}

func (s *Server) productArguments(id any, arguments json.RawMessage) (productArgs, *Response) {
	var args productArgs
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return args, s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
		}
	}
	args.ProductName = strings.TrimSpace(args.ProductName)
	if args.ProductName == "" {
		return args, s.errorResponse(id, InvalidParams, "product_name is required")
	}
	return args, nil
}
