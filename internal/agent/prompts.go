package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
)

var analysisSystemPrompt = `
You are an expert software engineer and technical writer who turns raw git commit history into a structured contribution overview.

CORE PRINCIPLES:
- Base every statement on the commit messages you are given, never invent features or technologies
- Keep descriptions short, concrete and written for a reader who has not seen the repository
- Infer the technology stack only from evidence in the commit messages (file names, framework terms, tooling)
- When the history is too thin to support a section, say so plainly instead of padding

OUTPUT REQUIREMENTS:
- Respond with a single JSON object and nothing else around it
- Put the JSON inside a fenced code block labeled json
`

var analysisUserPromptTemplate = `
Analyze the GitHub commit messages below and respond with a JSON object in exactly this shape:

{
  "project_overview": "description of the project and its key characteristics",
  "contributions": [
    { "area": "area of contribution", "description": "main technical contribution" }
  ],
  "tech_stack": ["technologies in use"],
  "code_highlights": ["notable code changes"],
  "project_structure": "how the codebase appears to be organized",
  "development_patterns": "recurring development practices visible in the history",
  "testing_approach": "how the project appears to be tested",
  "future_directions": "where the work seems to be heading"
}

The keys project_overview, contributions, tech_stack and code_highlights must always be present.
The remaining keys are optional: include them only when the commit history supports them.

Commit messages:
%s
`

// BuildAnalysisPrompt embeds one "<headline> (<timestamp>)" line per commit
// into the fixed analysis instruction template
func BuildAnalysisPrompt(commits []model.Commit) model.Prompt {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("%s (%s)", c.Headline, c.CommittedAt.Format(time.RFC3339)))
	}

	return model.Prompt{
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   fmt.Sprintf(analysisUserPromptTemplate, strings.Join(lines, "\n")),
	}
}
