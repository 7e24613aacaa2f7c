package github

import (
	"context"
	"strings"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

var _ model.CommitProvider = (*Provider)(nil)

// overFetchFactor compensates for author filtering downstream: the history
// query returns commits from all authors, so we ask for more than the
// caller ultimately wants.
const overFetchFactor = 3

const historyQuery = `
query ($owner: String!, $name: String!, $limit: Int!) {
  repository(owner: $owner, name: $name) {
    defaultBranchRef {
      target {
        ... on Commit {
          history(first: $limit) {
            edges {
              node {
                oid
                messageHeadline
                message
                committedDate
                additions
                deletions
                changedFilesIfAvailable
                author {
                  name
                  email
                  user {
                    login
                  }
                }
                associatedPullRequests(first: 1) {
                  nodes {
                    title
                    number
                    url
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// Provider fetches commit data from GitHub: history over GraphQL,
// per-commit file details over REST
type Provider struct {
	cfg    Config
	cli    *cliex.HTTP
	rest   *github.Client
	logger logze.Logger
}

// New creates a new GitHub provider
func New(cfg Config) (*Provider, error) {
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
	cli.C().SetHeader("Authorization", "Bearer "+cfg.Token)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	rest := github.NewClient(tc)

	if cfg.BaseURL != "" {
		rest, err = github.NewClient(tc).WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		cfg:    cfg,
		cli:    cli,
		rest:   rest,
		logger: logze.With("provider", "github"),
	}, nil
}

// FetchCommitHistory returns the newest default-branch commits of a repository.
// No retry here: a failed fetch is surfaced to the caller immediately.
func (p *Provider) FetchCommitHistory(ctx context.Context, owner, repo string, desired int) ([]model.Commit, error) {
	req := graphqlRequest{
		Query: historyQuery,
		Variables: map[string]any{
			"owner": owner,
			"name":  repo,
			"limit": desired * overFetchFactor,
		},
	}

	var resp historyResponse
	if _, err := p.cli.Post(ctx, p.cfg.GraphQLURL, req, &resp); err != nil {
		return nil, errm.Wrap(model.ErrUpstreamUnavailable, "github history request: "+err.Error())
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, errm.Wrap(model.ErrGraphQL, strings.Join(messages, "; "))
	}

	history, err := resolveHistory(&resp)
	if err != nil {
		return nil, err
	}

	commits := make([]model.Commit, 0, len(history.Edges))
	for _, edge := range history.Edges {
		commits = append(commits, convertCommit(edge.Node))
	}

	p.logger.Debug("fetched commit history", "owner", owner, "repo", repo, "count", len(commits))

	return commits, nil
}

// GetCommitFiles returns the file changes of a single commit via the REST
// detail endpoint
func (p *Provider) GetCommitFiles(ctx context.Context, owner, repo, sha string) ([]model.FileChange, error) {
	detail, _, err := p.rest.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, errm.Wrap(err, "failed to get commit details")
	}

	files := make([]model.FileChange, 0, len(detail.Files))
	for _, f := range detail.Files {
		files = append(files, model.FileChange{
			Filename:  f.GetFilename(),
			Status:    model.FileChangeStatus(f.GetStatus()),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}

	return files, nil
}

// resolveHistory walks the nested response path and reports the first
// missing field, so a "repository not found" and a malformed response
// produce the same kind with a usable diagnostic.
func resolveHistory(resp *historyResponse) (*historyNode, error) {
	switch {
	case resp.Data == nil:
		return nil, errm.Wrap(model.ErrSchema, "response has no data field")
	case resp.Data.Repository == nil:
		return nil, errm.Wrap(model.ErrSchema, "response has no repository field")
	case resp.Data.Repository.DefaultBranchRef == nil:
		return nil, errm.Wrap(model.ErrSchema, "response has no defaultBranchRef field")
	case resp.Data.Repository.DefaultBranchRef.Target == nil:
		return nil, errm.Wrap(model.ErrSchema, "response has no target field")
	case resp.Data.Repository.DefaultBranchRef.Target.History == nil:
		return nil, errm.Wrap(model.ErrSchema, "response has no history field")
	}
	return resp.Data.Repository.DefaultBranchRef.Target.History, nil
}

func convertCommit(node commitNode) model.Commit {
	commit := model.Commit{
		Hash:        node.OID,
		Headline:    node.MessageHeadline,
		Message:     node.Message,
		CommittedAt: node.CommittedDate,
		Stats: model.CommitStats{
			Additions:    node.Additions,
			Deletions:    node.Deletions,
			ChangedFiles: node.ChangedFilesIfAvailable,
		},
	}

	if node.Author != nil {
		commit.Author = model.CommitAuthor{
			Name:  node.Author.Name,
			Email: node.Author.Email,
		}
		if node.Author.User != nil {
			commit.Author.Login = node.Author.User.Login
		}
	}

	if node.AssociatedPullRequests != nil && len(node.AssociatedPullRequests.Nodes) > 0 {
		pr := node.AssociatedPullRequests.Nodes[0]
		commit.PullRequest = &model.PullRequestRef{
			Title:  pr.Title,
			Number: pr.Number,
			URL:    pr.URL,
		}
	}

	return commit
}
