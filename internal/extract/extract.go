// Package extract converts free-form model output into typed records.
//
// The producer (live model or demo responder) is cooperative but not
// contractually bound to exact formatting, so every parser here is total:
// a missing or garbled field keeps its documented default instead of
// failing the whole record.
package extract

import (
	"strconv"
	"strings"
)

// fieldValue returns the trimmed remainder of line after the first occurrence
// of marker, and whether the marker was present at all.
func fieldValue(line, marker string) (string, bool) {
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(line[i+len(marker):]), true
}

// parseIntField parses v as an integer clamped to [lo, hi]. On parse failure
// the provided default is returned unchanged.
func parseIntField(v string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return clampInt(n, lo, hi)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// splitList splits v on commas and trims each element, dropping empties.
// The literal values "None" and "None detected" (case-insensitive) yield an
// empty list; anything merely starting with "none" is a real entry.
func splitList(v string) []string {
	v = strings.TrimSpace(v)
	if low := strings.ToLower(v); v == "" || low == "none" || low == "none detected" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// capList truncates a list to at most n entries.
func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// isBullet reports whether a trimmed line is a bullet item.
func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
}

// stripBullet removes a leading bullet marker and surrounding whitespace.
func stripBullet(line string) string {
	line = strings.TrimPrefix(line, "-")
	line = strings.TrimPrefix(line, "•")
	return strings.TrimSpace(line)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
