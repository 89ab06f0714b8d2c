package domain

import "strings"

// Target is a normalized, scheme-qualified endpoint URL. Once created it is
// never mutated; re-normalizing a Target is a no-op.
type Target string

// NormalizeTarget trims whitespace and prefixes https:// when neither an
// http:// nor an https:// scheme is present. The second return is false for
// entries that are empty after trimming.
func NormalizeTarget(raw string) (Target, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return Target(raw), true
}

// NormalizeTargets normalizes raw entries preserving their order and dropping
// the ones that are empty after trimming.
func NormalizeTargets(raw []string) []Target {
	out := make([]Target, 0, len(raw))
	for _, r := range raw {
		if t, ok := NormalizeTarget(r); ok {
			out = append(out, t)
		}
	}
	return out
}
