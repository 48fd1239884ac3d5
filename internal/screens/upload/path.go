package upload

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome resolves a leading ~ and surrounding quotes from a pasted path.
func expandHome(p string) string {
	p = strings.Trim(strings.TrimSpace(p), `"'`)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
