package agent

import "testing"

func TestExtractJSONFencedBlock(t *testing.T) {
	reply := "Here is the analysis:\n```json\n{\"project_overview\": \"a tool\"}\n```\nLet me know."

	ex := ExtractJSON(reply)
	if !ex.Found {
		t.Fatalf("expected extraction to succeed")
	}
	if ex.Text != `{"project_overview": "a tool"}` {
		t.Fatalf("unexpected extracted text: %q", ex.Text)
	}
}

func TestExtractJSONBraceSpan(t *testing.T) {
	reply := `Sure! The result is {"a": {"b": 1}, "c": 2} as requested, and {"extra": true} too.`

	ex := ExtractJSON(reply)
	if !ex.Found {
		t.Fatalf("expected extraction to succeed")
	}
	if ex.Text != `{"a": {"b": 1}, "c": 2}` {
		t.Fatalf("expected first balanced span, got %q", ex.Text)
	}
}

func TestExtractJSONFencedTakesPrecedence(t *testing.T) {
	reply := "{\"outside\": true}\n```json\n{\"inside\": true}\n```"

	ex := ExtractJSON(reply)
	if !ex.Found || ex.Text != `{"inside": true}` {
		t.Fatalf("expected fenced block to win, got %q", ex.Text)
	}
}

func TestExtractJSONNothingFound(t *testing.T) {
	for _, reply := range []string{
		"I could not produce an analysis, sorry.",
		"",
		"unbalanced { never closes",
	} {
		if ex := ExtractJSON(reply); ex.Found {
			t.Fatalf("expected no extraction for %q, got %q", reply, ex.Text)
		}
	}
}
