package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(Config{Token: "test-token", GraphQLURL: srv.URL})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return p
}

func historyBody(t *testing.T, edges []map[string]any) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"defaultBranchRef": map[string]any{
					"target": map[string]any{
						"history": map[string]any{"edges": edges},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal history body: %v", err)
	}
	return body
}

func TestFetchCommitHistory(t *testing.T) {
	var gotReq graphqlRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		edges := []map[string]any{
			{"node": map[string]any{
				"oid":             "abc123",
				"messageHeadline": "add parser",
				"message":         "add parser\n\nlong body",
				"committedDate":   "2025-06-01T10:00:00Z",
				"additions":       10,
				"deletions":       2,
				"changedFilesIfAvailable": 3,
				"author": map[string]any{
					"name":  "Octo Cat",
					"email": "octo@example.com",
					"user":  map[string]any{"login": "octocat"},
				},
				"associatedPullRequests": map[string]any{
					"nodes": []map[string]any{{"title": "Parser PR", "number": 7, "url": "https://example.com/pr/7"}},
				},
			}},
			{"node": map[string]any{
				"oid":             "def456",
				"messageHeadline": "fix tests",
				"committedDate":   "2025-05-30T09:00:00Z",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(historyBody(t, edges))
	})

	commits, err := p.FetchCommitHistory(context.Background(), "octocat", "hello-world", 5)
	if err != nil {
		t.Fatalf("FetchCommitHistory: %v", err)
	}

	if limit, ok := gotReq.Variables["limit"].(float64); !ok || int(limit) != 15 {
		t.Fatalf("expected over-fetched limit 15, got %v", gotReq.Variables["limit"])
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	first := commits[0]
	if first.Hash != "abc123" || first.Headline != "add parser" {
		t.Fatalf("unexpected first commit: %+v", first)
	}
	if first.Author.Login != "octocat" || first.Author.Email != "octo@example.com" {
		t.Fatalf("unexpected author: %+v", first.Author)
	}
	if first.Stats.Additions != 10 || first.Stats.ChangedFiles != 3 {
		t.Fatalf("unexpected stats: %+v", first.Stats)
	}
	if first.PullRequest == nil || first.PullRequest.Number != 7 {
		t.Fatalf("expected associated pull request, got %+v", first.PullRequest)
	}

	if commits[1].Author.Login != "" {
		t.Fatalf("expected empty login for commit without linked user")
	}
}

func TestFetchCommitHistoryUpstreamDown(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := p.FetchCommitHistory(context.Background(), "octocat", "missing", 5)
	if !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetchCommitHistoryGraphQLErrors(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{
				{"message": "rate limited"},
				{"message": "try again later"},
			},
		})
	})

	_, err := p.FetchCommitHistory(context.Background(), "octocat", "hello-world", 5)
	if !errors.Is(err, model.ErrGraphQL) {
		t.Fatalf("expected ErrGraphQL, got %v", err)
	}
}

func TestFetchCommitHistorySchemaError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// repository exists but has no default branch
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"repository": map[string]any{"defaultBranchRef": nil},
			},
		})
	})

	_, err := p.FetchCommitHistory(context.Background(), "octocat", "empty-repo", 5)
	if !errors.Is(err, model.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, model.ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
}
