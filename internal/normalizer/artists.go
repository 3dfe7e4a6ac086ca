package normalizer

import (
	"regexp"
	"strings"
)

// Collaboration separators that hide two independent artists in one segment.
// Checked in order; the longer phrases must come first so "with special guest"
// is not eaten by plain "with".
var collabSeparators = []string{
	" with special guests ",
	" with special guest ",
	" featuring ",
	" feat. ",
	" feat ",
	" ft. ",
	" w/ ",
	" with ",
}

// camelPattern matches tokens like "JobberShortFuse": two or more capitalized
// runs joined without a space, the usual artifact of lines glued together
// upstream.
var camelPattern = regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z]+)+$`)

const camelSuspectMinLen = 8

// SplitArtistLine breaks an artist line into individual artist names: first on
// commas, then on collaboration separators within each segment. fixes maps
// known mis-joined tokens to their corrected name lists and is applied before
// any further splitting.
func SplitArtistLine(line string, fixes map[string][]string) []string {
	var names []string

	for _, segment := range strings.Split(line, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if corrected, ok := fixes[segment]; ok {
			for _, name := range corrected {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}

			continue
		}

		names = append(names, splitCollaboration(segment)...)
	}

	return names
}

func splitCollaboration(segment string) []string {
	lower := strings.ToLower(segment)

	for _, sep := range collabSeparators {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}

		left := strings.TrimSpace(segment[:idx])
		right := strings.TrimSpace(segment[idx+len(sep):])

		var out []string
		if left != "" {
			out = append(out, splitCollaboration(left)...)
		}

		if right != "" {
			out = append(out, splitCollaboration(right)...)
		}

		return out
	}

	return []string{segment}
}

// SuspectCamelCase reports whether a name looks like two names concatenated
// without a space. Single-word stage names with legitimate interior capitals
// are excluded via the configured prefix allowlist ("Mc", "Di", ...).
func SuspectCamelCase(name string, allowPrefixes []string) bool {
	if strings.ContainsAny(name, " \t") || len(name) < camelSuspectMinLen {
		return false
	}

	if !camelPattern.MatchString(name) {
		return false
	}

	for _, prefix := range allowPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}

	return true
}
