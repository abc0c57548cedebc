package res

import (
	"path"
	"strings"
)

// Key normalizes p into a table key.
//
// Backslashes are treated as separators, so a key produced on Windows
// addresses the same entry everywhere:
//   - "data\inner\boom" → "data/inner/boom"
//   - "./data//foo"     → "data/foo"
//   - "/data/foo/"      → "data/foo"
//   - ""                → "."
func Key(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}
