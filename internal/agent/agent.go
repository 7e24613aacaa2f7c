package agent

import (
	"context"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/agent/claude"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Agent turns a commit sequence into a structured analysis payload.
// It caches results per (repository, username) and degrades to the fixed
// default payload on any LLM or extraction failure, so analysis never
// raises a hard error once it has commits to work with.
type Agent struct {
	cfg    Config
	api    model.AgentAPI
	cache  model.AnalysisCache
	logger logze.Logger
}

// New creates a new analysis agent. The cache may be nil, in which case
// every call invokes the LLM and nothing is persisted.
func New(ctx context.Context, cfg Config, cache model.AnalysisCache) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	cli, err := cliex.NewWithConfig(cliex.Config{
		UserAgent:      cfg.UserAgent,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}

	api, err := claude.New(ctx, cli, model.ModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		URL:    cfg.BaseURL,
		IsTest: cfg.IsTest,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create claude agent")
	}

	return &Agent{
		cfg:    cfg,
		api:    api,
		cache:  cache,
		logger: logze.With("component", "agent"),
	}, nil
}

// AnalyzeCommits produces the analysis payload for a commit sequence.
// An empty sequence returns the default payload without any outbound call.
// When key is set, an existing cached analysis short-circuits the LLM, and
// the outcome of a fresh run (real or default payload) is upserted so the
// pair is not re-analyzed on the next request.
func (a *Agent) AnalyzeCommits(ctx context.Context, commits []model.Commit, key *model.AnalysisKey) model.AnalysisPayload {
	if len(commits) == 0 {
		return model.DefaultPayload()
	}

	if key != nil && a.cache != nil {
		if rec, err := a.cache.GetAnalysis(ctx, *key); err == nil {
			a.logger.Debug("returning cached analysis", "id", key.ID())
			return rec.Payload
		}
	}

	payload, err := a.analyze(ctx, commits)
	if err != nil {
		a.logger.Err(err, "analysis failed, falling back to default payload",
			"commits", len(commits))
		payload = model.DefaultPayload()
	}

	if key != nil && a.cache != nil {
		// Stored on failure as well: a degraded result still marks the
		// pair as analyzed and prevents repeated expensive re-attempts.
		if _, err := a.cache.UpsertAnalysis(ctx, *key, len(commits), payload); err != nil {
			a.logger.Err(err, "failed to store analysis", "id", key.ID())
		}
	}

	return payload
}

func (a *Agent) analyze(ctx context.Context, commits []model.Commit) (model.AnalysisPayload, error) {
	prompt := BuildAnalysisPrompt(commits)

	resp, err := a.api.CallAPI(ctx, model.APIRequest{
		Prompt:       prompt.UserPrompt,
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
	})
	if err != nil {
		return model.AnalysisPayload{}, errm.Wrap(err, "failed to call API")
	}

	extracted := ExtractJSON(resp.Content)
	if !extracted.Found {
		return model.AnalysisPayload{}, errm.Wrap(model.ErrExtraction, "no json object in reply")
	}

	var payload model.AnalysisPayload
	if err := json.Unmarshal([]byte(extracted.Text), &payload); err != nil {
		return model.AnalysisPayload{}, errm.Wrap(model.ErrExtraction, "parse extracted json: "+err.Error())
	}

	return repairPayload(payload, []byte(extracted.Text)), nil
}

// repairPayload substitutes mandatory fields the reply left out with the
// default payload's values. Presence is decided by the key, not the value:
// an explicit empty list or string stays as delivered and renders through
// the presenter's fallback sentences. Absent optional narrative fields are
// left empty; they never fail an otherwise usable analysis.
func repairPayload(payload model.AnalysisPayload, raw []byte) model.AnalysisPayload {
	def := model.DefaultPayload()

	var keys map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		keys = nil
	}
	missing := func(name string) bool {
		_, ok := keys[name]
		return !ok
	}

	if missing("project_overview") {
		payload.ProjectOverview = def.ProjectOverview
	}
	if missing("contributions") {
		payload.Contributions = def.Contributions
	}
	if missing("tech_stack") {
		payload.TechStack = def.TechStack
	}
	if missing("code_highlights") {
		payload.CodeHighlights = def.CodeHighlights
	}

	return payload
}
