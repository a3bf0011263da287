package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/alcohol"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const (
	toolProjectNutrition = "project_nutrition"
	toolAlcoholImpact    = "alcohol_impact"
)

// handleToolCall answers MCP tools/call requests for the two calculators.
func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	var (
		data any
		err  error
	)
	switch request.Name {
	case toolProjectNutrition:
		data, err = s.callProjectNutrition(&request)
	case toolAlcoholImpact:
		data, err = callAlcoholImpact(&request)
	default:
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	result, err := toolResult(data)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Warn("encode tool result", zap.Error(err))
	}
}

func (s *Server) callProjectNutrition(req *protocol.CallToolRequest) (any, error) {
	form, err := formFromMap(req.Arguments)
	if err != nil {
		return nil, err
	}
	_, res, err := s.project(form)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func callAlcoholImpact(req *protocol.CallToolRequest) (any, error) {
	var params alcohol.Request
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return calculateAlcohol(params)
}

// extractParams round-trips the argument map through JSON into target. A
// type mismatch in the arguments is the caller's fault.
func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &projection.ValidationError{Field: "arguments", Reason: fmt.Sprintf("malformed parameters: %v", err)}
	}
	return nil
}

func toolResult(data any) (*protocol.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(raw),
			},
		},
	}, nil
}
