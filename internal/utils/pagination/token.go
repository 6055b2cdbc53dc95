package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeCursor creates a base64 encoded token from a customer's sort keys
// (name, then id). This keeps listing pagination stable across pages.
func EncodeCursor(name, id string) string {
	return EncodeMultiFieldToken(name, id)
}

// DecodeCursor parses a listing token back into its name and id keys.
func DecodeCursor(token string) (string, string, error) {
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", "", err
	}
	if len(fields) != 2 {
		return "", "", fmt.Errorf("invalid pagination token format (expected 2 fields, got %d)", len(fields))
	}
	return fields[0], fields[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
// This provides flexibility for different pagination strategies.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
