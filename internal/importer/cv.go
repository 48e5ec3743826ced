package importer

import (
	"regexp"
	"sort"
	"strings"
)

var wordOnly = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ScanText matches known technology names against a free-text CV,
// case-insensitively. Names made of plain word characters are matched on
// word boundaries; names carrying symbols (C++, C#, Node.js) fall back to a
// substring match since \b is meaningless next to them. Returned names keep
// their catalog spelling, deduplicated and sorted.
func ScanText(text string, known []string) []string {
	if strings.TrimSpace(text) == "" || len(known) == 0 {
		return []string{}
	}

	detected := make(map[string]struct{})
	lower := strings.ToLower(text)

	for _, name := range known {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if wordOnly.MatchString(name) {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
			if err != nil {
				continue
			}
			if re.MatchString(text) {
				detected[name] = struct{}{}
			}
			continue
		}

		if strings.Contains(lower, strings.ToLower(name)) {
			detected[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(detected))
	for name := range detected {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
