package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
)

// fakeCache is a minimal in-memory AnalysisCache for agent tests
type fakeCache struct {
	records map[string]model.AnalysisRecord
	upserts int
}

func newFakeCache() *fakeCache {
	return &fakeCache{records: make(map[string]model.AnalysisRecord)}
}

func (c *fakeCache) GetAnalysis(_ context.Context, key model.AnalysisKey) (model.AnalysisRecord, error) {
	rec, ok := c.records[key.ID()]
	if !ok {
		return model.AnalysisRecord{}, model.ErrNotFound
	}
	return rec, nil
}

func (c *fakeCache) UpsertAnalysis(_ context.Context, key model.AnalysisKey, commitCount int, payload model.AnalysisPayload) (model.AnalysisRecord, error) {
	rec := model.AnalysisRecord{
		ID:          key.ID(),
		Repository:  key.Repository,
		Username:    key.Username,
		CommitCount: commitCount,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}
	c.records[key.ID()] = rec
	c.upserts++
	return rec, nil
}

func (c *fakeCache) ListAnalyses(context.Context) ([]model.AnalysisRecord, error) { return nil, nil }

func (c *fakeCache) GetAnalysisByID(_ context.Context, id string) (model.AnalysisRecord, error) {
	rec, ok := c.records[id]
	if !ok {
		return model.AnalysisRecord{}, model.ErrNotFound
	}
	return rec, nil
}

func (c *fakeCache) DeleteAnalysis(_ context.Context, id string) error {
	if _, ok := c.records[id]; !ok {
		return model.ErrNotFound
	}
	delete(c.records, id)
	return nil
}

func llmReply(t *testing.T, text string) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
		"usage":   map[string]any{"input_tokens": 10, "output_tokens": 20},
	})
	if err != nil {
		t.Fatalf("marshal llm reply: %v", err)
	}
	return body
}

func newTestAgent(t *testing.T, cache model.AnalysisCache, handler http.HandlerFunc) *Agent {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := New(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL}, cache)
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	return a
}

func testCommits(n int) []model.Commit {
	commits := make([]model.Commit, n)
	for i := range commits {
		commits[i] = model.Commit{
			Hash:        "hash" + string(rune('a'+i)),
			Headline:    "commit headline",
			CommittedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		}
	}
	return commits
}

func TestAnalyzeCommitsEmptyInput(t *testing.T) {
	calls := 0
	a := newTestAgent(t, newFakeCache(), func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, "{}"))
	})

	payload := a.AnalyzeCommits(context.Background(), nil, nil)

	if calls != 0 {
		t.Fatalf("expected no LLM call for empty commits, got %d", calls)
	}
	def := model.DefaultPayload()
	if payload.ProjectOverview != def.ProjectOverview {
		t.Fatalf("expected default payload, got %+v", payload)
	}
	if len(payload.CodeHighlights) != 1 || payload.CodeHighlights[0] != def.CodeHighlights[0] {
		t.Fatalf("expected default code highlights, got %+v", payload.CodeHighlights)
	}
}

func TestAnalyzeCommitsSuccess(t *testing.T) {
	reply := "Here you go:\n```json\n" + `{
		"project_overview": "a web service",
		"contributions": [{"area": "backend", "description": "built the API"}],
		"tech_stack": ["Go", "Redis"],
		"code_highlights": ["commit pipeline"]
	}` + "\n```"

	cache := newFakeCache()
	a := newTestAgent(t, cache, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, reply))
	})

	key := &model.AnalysisKey{
		Repository: model.Repository{Owner: "octocat", Name: "hello-world"},
		Username:   "octocat",
	}
	payload := a.AnalyzeCommits(context.Background(), testCommits(3), key)

	if payload.ProjectOverview != "a web service" {
		t.Fatalf("unexpected overview: %q", payload.ProjectOverview)
	}
	if len(payload.TechStack) != 2 || payload.TechStack[0] != "Go" {
		t.Fatalf("unexpected tech stack: %+v", payload.TechStack)
	}

	rec, err := cache.GetAnalysis(context.Background(), *key)
	if err != nil {
		t.Fatalf("expected analysis to be cached: %v", err)
	}
	if rec.CommitCount != 3 {
		t.Fatalf("expected commit count 3, got %d", rec.CommitCount)
	}
}

func TestAnalyzeCommitsRepairsMandatoryFields(t *testing.T) {
	// overview present, the other mandatory keys missing
	reply := "```json\n{\"project_overview\": \"a compiler\"}\n```"

	a := newTestAgent(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, reply))
	})

	payload := a.AnalyzeCommits(context.Background(), testCommits(2), nil)

	if payload.ProjectOverview != "a compiler" {
		t.Fatalf("expected model-provided overview, got %q", payload.ProjectOverview)
	}
	def := model.DefaultPayload()
	if len(payload.Contributions) != 1 || payload.Contributions[0].Area != def.Contributions[0].Area {
		t.Fatalf("expected default contributions, got %+v", payload.Contributions)
	}
	if payload.TechStack == nil {
		t.Fatalf("expected repaired tech stack, got nil")
	}
	if len(payload.CodeHighlights) == 0 {
		t.Fatalf("expected repaired code highlights")
	}
}

func TestAnalyzeCommitsKeepsExplicitEmptyFields(t *testing.T) {
	// empty lists delivered by the model are not the same as missing keys
	// and must survive untouched
	reply := "```json\n{\"project_overview\": \"a compiler\", \"contributions\": [], \"tech_stack\": [], \"code_highlights\": []}\n```"

	a := newTestAgent(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, reply))
	})

	payload := a.AnalyzeCommits(context.Background(), testCommits(2), nil)

	if payload.ProjectOverview != "a compiler" {
		t.Fatalf("expected model-provided overview, got %q", payload.ProjectOverview)
	}
	if len(payload.Contributions) != 0 {
		t.Fatalf("expected explicit empty contributions kept, got %+v", payload.Contributions)
	}
	if len(payload.TechStack) != 0 {
		t.Fatalf("expected explicit empty tech stack kept, got %+v", payload.TechStack)
	}
	if len(payload.CodeHighlights) != 0 {
		t.Fatalf("expected explicit empty code highlights kept, got %+v", payload.CodeHighlights)
	}
}

func TestAnalyzeCommitsNoJSONInReply(t *testing.T) {
	cache := newFakeCache()
	a := newTestAgent(t, cache, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, "I am sorry, I cannot analyze this commit history."))
	})

	key := &model.AnalysisKey{
		Repository: model.Repository{Owner: "octocat", Name: "hello-world"},
		Username:   "octocat",
	}
	payload := a.AnalyzeCommits(context.Background(), testCommits(2), key)

	def := model.DefaultPayload()
	if payload.ProjectOverview != def.ProjectOverview {
		t.Fatalf("expected default payload on extraction failure, got %+v", payload)
	}

	// the default result is still stored, marking the pair as analyzed
	rec, err := cache.GetAnalysis(context.Background(), *key)
	if err != nil {
		t.Fatalf("expected default payload to be cached: %v", err)
	}
	if rec.Payload.ProjectOverview != def.ProjectOverview {
		t.Fatalf("cached payload is not the default one")
	}
}

func TestAnalyzeCommitsLLMDown(t *testing.T) {
	a := newTestAgent(t, nil, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	})

	payload := a.AnalyzeCommits(context.Background(), testCommits(2), nil)

	if payload.ProjectOverview != model.DefaultPayload().ProjectOverview {
		t.Fatalf("expected default payload when LLM is down, got %+v", payload)
	}
}

func TestAnalyzeCommitsCacheHitSkipsLLM(t *testing.T) {
	calls := 0
	cache := newFakeCache()
	a := newTestAgent(t, cache, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(llmReply(t, "```json\n{\"project_overview\": \"fresh\"}\n```"))
	})

	key := &model.AnalysisKey{
		Repository: model.Repository{Owner: "octocat", Name: "hello-world"},
		Username:   "octocat",
	}
	stored := model.AnalysisPayload{ProjectOverview: "stored overview", TechStack: []string{"Go"}}
	if _, err := cache.UpsertAnalysis(context.Background(), *key, 5, stored); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	payload := a.AnalyzeCommits(context.Background(), testCommits(2), key)

	if calls != 0 {
		t.Fatalf("expected no LLM call on cache hit, got %d", calls)
	}
	if payload.ProjectOverview != "stored overview" {
		t.Fatalf("expected cached payload verbatim, got %+v", payload)
	}
}
