package model

import "time"

// AnalysisKey identifies one analysis result: a repository plus the
// username the contribution overview was generated for
type AnalysisKey struct {
	Repository Repository `json:"repository"`
	Username   string     `json:"username"`
}

// ID returns the storage identity of the analysis, "owner/name:username"
func (k AnalysisKey) ID() string {
	return k.Repository.Key() + ":" + k.Username
}

// Contribution is one area of work attributed to the user
type Contribution struct {
	Area        string `json:"area"`
	Description string `json:"description"`
}

// AnalysisPayload is the structured result produced by the LLM.
// The first four fields are mandatory and repaired from the default
// payload when the model omits them; the narrative fields are optional.
type AnalysisPayload struct {
	ProjectOverview string         `json:"project_overview"`
	Contributions   []Contribution `json:"contributions"`
	TechStack       []string       `json:"tech_stack"`
	CodeHighlights  []string       `json:"code_highlights"`

	ProjectStructure    string `json:"project_structure,omitempty"`
	DevelopmentPatterns string `json:"development_patterns,omitempty"`
	TestingApproach     string `json:"testing_approach,omitempty"`
	FutureDirections    string `json:"future_directions,omitempty"`
}

// AnalysisRecord is a stored analysis result, one per (repository, username)
type AnalysisRecord struct {
	ID          string          `json:"id"`
	Repository  Repository      `json:"repository"`
	Username    string          `json:"username"`
	CommitCount int             `json:"commit_count"`
	Payload     AnalysisPayload `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DefaultPayload returns the fixed fallback analysis used when commits are
// empty or when the LLM invocation, extraction or parsing fails. It is also
// the source of substitutions for missing mandatory fields.
func DefaultPayload() AnalysisPayload {
	return AnalysisPayload{
		ProjectOverview: "The commit history does not contain enough information to describe the project in detail.",
		Contributions: []Contribution{
			{Area: "code contribution", Description: "file changes and additions were made"},
		},
		TechStack:           []string{},
		CodeHighlights:      []string{"file modification and creation"},
		ProjectStructure:    "The project structure cannot be determined from the available data.",
		DevelopmentPatterns: "Development patterns cannot be determined from the available data.",
		TestingApproach:     "The testing approach cannot be determined from the available data.",
		FutureDirections:    "Future directions cannot be determined from the available data.",
	}
}
