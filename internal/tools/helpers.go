// Package tools implements the MCP tool handlers for the tracker.
//
// Each tool is a struct with its dependency (the tracker service)
// injected via constructor; Definition() returns the mcp.Tool schema
// and Handle() processes a call. Caller mistakes (validation failures,
// missing targets) come back as labeled error results; infrastructure
// failures propagate as Go errors.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskporter/taskporter/internal/entities"
	"github.com/taskporter/taskporter/internal/tracker"
)

// stringSliceArg extracts an optional string-array argument. Absent
// yields (nil, nil); a wrong-typed value or element is an error.
func stringSliceArg(req mcp.CallToolRequest, key string) ([]string, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("'%s' must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, v := range items {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

// floatPtrArg extracts an optional number argument, nil when absent
// (JSON numbers arrive as float64).
func floatPtrArg(req mcp.CallToolRequest, key string) (*float64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil, nil
	}
	v, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("'%s' must be a number", key)
	}
	return &v, nil
}

// boolPtrArg extracts an optional boolean argument, nil when absent.
func boolPtrArg(req mcp.CallToolRequest, key string) (*bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("'%s' must be a boolean", key)
	}
	return &v, nil
}

// argError is the labeled result for a wrong-typed or malformed
// argument.
func argError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("validation error: " + err.Error())
}

// hasArg reports whether the caller supplied the key at all; partial
// updates must distinguish "omitted" from "set to the zero value".
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

// decodeArg re-marshals a raw object argument into a typed value.
func decodeArg(req mcp.CallToolRequest, key string, v any) error {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return fmt.Errorf("'%s' is required", key)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("reading '%s': %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("'%s' is malformed: %w", key, err)
	}
	return nil
}

// jsonResult serializes a successful payload.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// failure maps a tracker error to a labeled tool result. Validation
// failures and missing mandatory targets are the caller's problem;
// anything else (storage trouble) is surfaced as a Go error so it is
// reported as an operation failure rather than a payload.
func failure(err error) (*mcp.CallToolResult, error) {
	switch {
	case entities.IsValidation(err):
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %v", err)), nil
	case errors.Is(err, tracker.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("not found: %v", err)), nil
	default:
		return nil, err
	}
}

// notFoundResult is the labeled result for read operations whose
// target id is unknown.
func notFoundResult(kind, id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("not found: %s %q does not exist", kind, id))
}
