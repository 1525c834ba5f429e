package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors contains the constraint violations of a bean, keyed by
// property path ("tls.certFile")
type ValidationErrors struct {
	Fields map[string][]string `json:"fields"`
}

// NewValidationErrors creates a new ValidationErrors instance
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Fields: make(map[string][]string),
	}
}

// Add adds a violation for a specific path
func (ve *ValidationErrors) Add(path, message string) {
	if ve.Fields == nil {
		ve.Fields = make(map[string][]string)
	}
	ve.Fields[path] = append(ve.Fields[path], message)
}

// Merge adds every violation of other under prefix
func (ve *ValidationErrors) Merge(prefix string, other *ValidationErrors) {
	if other == nil {
		return
	}
	for path, messages := range other.Fields {
		if prefix != "" {
			path = prefix + "." + path
		}
		for _, msg := range messages {
			ve.Add(path, msg)
		}
	}
}

// HasErrors returns true if there are any violations
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Fields) > 0
}

// Count returns the total number of violations across all paths
func (ve *ValidationErrors) Count() int {
	count := 0
	for _, messages := range ve.Fields {
		count += len(messages)
	}
	return count
}

// Paths returns the violated paths in sorted order
func (ve *ValidationErrors) Paths() []string {
	paths := make([]string, 0, len(ve.Fields))
	for path := range ve.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Error implements the error interface
func (ve *ValidationErrors) Error() string {
	if !ve.HasErrors() {
		return "validation failed"
	}

	var messages []string
	for _, path := range ve.Paths() {
		for _, msg := range ve.Fields[path] {
			messages = append(messages, fmt.Sprintf("  - %s: %s", path, msg))
		}
	}

	if len(messages) == 1 {
		return fmt.Sprintf("validation failed: %s", strings.TrimPrefix(messages[0], "  - "))
	}

	return fmt.Sprintf("validation failed:\n%s", strings.Join(messages, "\n"))
}

// MarshalJSON implements json.Marshaler
func (ve *ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}{
		Error:  "validation_failed",
		Fields: ve.Fields,
	})
}
