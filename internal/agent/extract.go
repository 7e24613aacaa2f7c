package agent

import "regexp"

// Extraction is the tagged result of scanning an LLM reply for a JSON
// payload: either the candidate text or nothing.
type Extraction struct {
	Text  string
	Found bool
}

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")

// ExtractJSON scans free text for a JSON object using ordered strategies:
// a fenced code block labeled json first, then the first balanced-looking
// {...} span. The caller decides whether the candidate actually parses.
func ExtractJSON(reply string) Extraction {
	if m := fencedJSONRe.FindStringSubmatch(reply); m != nil {
		return Extraction{Text: m[1], Found: true}
	}
	if span, ok := braceSpan(reply); ok {
		return Extraction{Text: span, Found: true}
	}
	return Extraction{}
}

// braceSpan returns the first brace-balanced span of the text. It counts
// braces without string awareness, which is enough to cut a candidate out
// of surrounding prose.
func braceSpan(s string) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
