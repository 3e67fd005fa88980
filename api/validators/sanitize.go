package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the result at maxLen
// bytes. Used for free-form request metadata such as user agents.
func SanitizeString(input string, maxLen int) string {
	out := strings.TrimSpace(input)
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
