package transport

import (
	"encoding/json"
	"strings"
)

// Header renders the start of a CMD module wrapper, up to and including the
// comma before the factory function.
func Header(id string, deps []string) string {
	quotedDeps := make([]string, 0, len(deps))
	for _, dep := range deps {
		quotedDeps = append(quotedDeps, quote(dep))
	}
	return "define(" + quote(id) + ", [" + strings.Join(quotedDeps, ", ") + "], "
}

func quote(value string) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
