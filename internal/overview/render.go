package overview

import (
	"fmt"
	"strings"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
)

// Fixed fallback sentences per section, used when the payload carries
// nothing for that section
const (
	noOverview     = "No project overview information was provided."
	noContribution = "No contribution information was provided."
	noTechStack    = "No tech stack information was provided."
	noHighlights   = "No code highlight information was provided."
	noStructure    = "No project structure information was provided."
	noPatterns     = "No development pattern information was provided."
	noTesting      = "No testing approach information was provided."
	noDirections   = "No future direction information was provided."
)

// RenderMarkdown turns an analysis payload into the fixed-section overview
// document. It is total: every payload, including the default one, yields
// all eight sections in the same order.
func RenderMarkdown(payload model.AnalysisPayload) string {
	var b strings.Builder

	section(&b, "Project Overview")
	textOr(&b, payload.ProjectOverview, noOverview)

	section(&b, "Contributions")
	if len(payload.Contributions) > 0 {
		for _, c := range payload.Contributions {
			fmt.Fprintf(&b, "## %s\n", valueOr(c.Area, "unspecified area"))
			fmt.Fprintf(&b, "- **Main contribution:** %s\n\n", valueOr(c.Description, "no description"))
		}
	} else {
		textOr(&b, "", noContribution)
	}

	section(&b, "Tech Stack")
	if len(payload.TechStack) > 0 {
		b.WriteString(strings.Join(payload.TechStack, ", "))
		b.WriteString("\n\n")
	} else {
		textOr(&b, "", noTechStack)
	}

	section(&b, "Code Highlights")
	if len(payload.CodeHighlights) > 0 {
		for _, h := range payload.CodeHighlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	} else {
		textOr(&b, "", noHighlights)
	}

	section(&b, "Project Structure")
	textOr(&b, payload.ProjectStructure, noStructure)

	section(&b, "Development Patterns")
	textOr(&b, payload.DevelopmentPatterns, noPatterns)

	section(&b, "Testing Approach")
	textOr(&b, payload.TestingApproach, noTesting)

	section(&b, "Future Directions")
	textOr(&b, payload.FutureDirections, noDirections)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s\n", title)
}

func textOr(b *strings.Builder, text, fallback string) {
	if text == "" {
		text = fallback
	}
	b.WriteString(text)
	b.WriteString("\n\n")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
