package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/stringlens/internal/errors"
)

// decode unmarshals MCP request arguments into a typed struct.
// Avoids unsafe type assertions and handles JSON decoding safely.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	args := req.GetArguments()
	b, err := json.Marshal(args)
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// decodeValue extracts the required string "value" argument.
func decodeValue(req mcp.CallToolRequest) (string, error) {
	input, err := decode[ValueRequest](req)
	if err != nil {
		return "", errors.NewUnprocessable(`"value" must be a string`)
	}
	if input.Value == nil {
		return "", errors.NewInvalidRequest(`Missing "value" field`)
	}
	return *input.Value, nil
}
