package overview

import (
	"context"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// Analyzer produces an analysis payload for a commit sequence. It never
// fails: degraded results come back as the default payload.
type Analyzer interface {
	AnalyzeCommits(ctx context.Context, commits []model.Commit, key *model.AnalysisKey) model.AnalysisPayload
}

// Service runs the contribution-overview pipeline:
// fetch -> match -> persist -> analyze -> render.
type Service struct {
	cfg      Config
	provider model.CommitProvider
	analyzer Analyzer
	store    model.Store
	matcher  *Matcher
	log      logze.Logger
}

// New creates the overview service
func New(cfg Config, provider model.CommitProvider, analyzer Analyzer, store model.Store) (*Service, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	return &Service{
		cfg:      cfg,
		provider: provider,
		analyzer: analyzer,
		store:    store,
		matcher:  NewMatcher(),
		log:      logze.With("component", "overview"),
	}, nil
}

// GenerateRequest identifies whose contributions to analyze and where
type GenerateRequest struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// GenerateResult is a rendered overview plus its structured payload
type GenerateResult struct {
	Markdown    string                `json:"markdown"`
	Payload     model.AnalysisPayload `json:"payload"`
	CommitCount int                   `json:"commit_count"`
}

// SavedAnalysis is a stored analysis together with its rendered document
type SavedAnalysis struct {
	model.AnalysisRecord
	Markdown string `json:"markdown"`
}

// Generate runs the full pipeline for one (owner, repo, username) request.
// A failed history fetch aborts the whole run; analysis failures degrade
// to the default payload inside the analyzer and never surface here.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if req.Owner == "" || req.Repo == "" || req.Username == "" {
		return GenerateResult{}, errm.Wrap(model.ErrValidation, "owner, repo and username are required")
	}
	if req.Count <= 0 {
		req.Count = s.cfg.DefaultCommitCount
	}

	log := s.log.WithFields("owner", req.Owner, "repo", req.Repo, "username", req.Username)
	timer := abstract.StartTimer()

	commits, err := s.provider.FetchCommitHistory(ctx, req.Owner, req.Repo, req.Count)
	if err != nil {
		return GenerateResult{}, errm.Wrap(err, "failed to fetch commit history")
	}

	matched := s.matcher.MatchOrFallback(commits, req.Username, req.Count)

	repo := model.Repository{Owner: req.Owner, Name: req.Repo}
	if err := s.persistCommits(ctx, repo, matched, log); err != nil {
		return GenerateResult{}, errm.Wrap(err, "failed to persist commits")
	}

	key := model.AnalysisKey{Repository: repo, Username: req.Username}
	payload := s.analyzer.AnalyzeCommits(ctx, matched, &key)

	log.Info("generated contribution overview",
		"fetched", len(commits),
		"analyzed", len(matched),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return GenerateResult{
		Markdown:    RenderMarkdown(payload),
		Payload:     payload,
		CommitCount: len(matched),
	}, nil
}

// persistCommits stores each commit idempotently. The per-commit file
// detail request runs only for newly created records; its failure skips
// file persistence for that commit and never aborts the batch.
func (s *Service) persistCommits(ctx context.Context, repo model.Repository, commits []model.Commit, log logze.Logger) error {
	for _, commit := range commits {
		created, err := s.store.SaveCommit(ctx, repo, commit)
		if err != nil {
			return errm.Wrap(err, "failed to save commit")
		}
		if !created {
			continue
		}

		files, err := s.provider.GetCommitFiles(ctx, repo.Owner, repo.Name, commit.Hash)
		if err != nil {
			log.Err(err, "skipping file changes for commit", "hash", commit.Hash)
			continue
		}
		if err := s.store.SetCommitFiles(ctx, commit.Hash, files); err != nil {
			log.Err(err, "failed to store file changes", "hash", commit.Hash)
		}
	}
	return nil
}

// ListCommits reads stored commits, falling back to a live, unfiltered
// and unstored fetch when storage has nothing for the repository.
func (s *Service) ListCommits(ctx context.Context, owner, repo, username string, count int) ([]model.CommitRecord, error) {
	if owner == "" || repo == "" {
		return nil, errm.Wrap(model.ErrValidation, "owner and repo are required")
	}
	if count <= 0 {
		count = s.cfg.DefaultCommitCount
	}

	repository := model.Repository{Owner: owner, Name: repo}
	records, err := s.store.ListCommits(ctx, repository, username, count)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list stored commits")
	}
	if len(records) > 0 {
		return records, nil
	}

	commits, err := s.provider.FetchCommitHistory(ctx, owner, repo, count)
	if err != nil {
		return nil, errm.Wrap(err, "failed to fetch commit history")
	}
	if len(commits) > count {
		commits = commits[:count]
	}

	records = make([]model.CommitRecord, 0, len(commits))
	for _, c := range commits {
		records = append(records, model.CommitRecord{
			Hash:        c.Hash,
			Repository:  repository,
			Author:      c.Author.DisplayName(),
			Message:     c.Message,
			CommittedAt: c.CommittedAt,
			Stats:       c.Stats,
		})
	}

	return records, nil
}

// GetCommitDetail returns one stored commit with its file changes
func (s *Service) GetCommitDetail(ctx context.Context, hash string) (model.CommitRecord, error) {
	if hash == "" {
		return model.CommitRecord{}, errm.Wrap(model.ErrValidation, "commit hash is required")
	}
	return s.store.GetCommit(ctx, hash)
}

// ListAnalyses returns all saved analyses, newest first
func (s *Service) ListAnalyses(ctx context.Context) ([]model.AnalysisRecord, error) {
	return s.store.ListAnalyses(ctx)
}

// GetAnalysis returns one saved analysis with its rendered document
func (s *Service) GetAnalysis(ctx context.Context, id string) (SavedAnalysis, error) {
	record, err := s.store.GetAnalysisByID(ctx, id)
	if err != nil {
		return SavedAnalysis{}, err
	}
	return SavedAnalysis{
		AnalysisRecord: record,
		Markdown:       RenderMarkdown(record.Payload),
	}, nil
}

// DeleteAnalysis removes one saved analysis
func (s *Service) DeleteAnalysis(ctx context.Context, id string) error {
	return s.store.DeleteAnalysis(ctx, id)
}
