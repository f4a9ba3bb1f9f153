package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// shortName trims a source identifier for the status line.
func shortName(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if i := strings.LastIndex(src, "/"); i >= 0 && i < len(src)-1 {
			return src[i+1:]
		}
		return src
	}
	return filepath.Base(src)
}

// formatElapsed formats a load time as "850ms" or "1.2s".
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
