package model

import (
	"context"
)

// CommitProvider fetches commit data from the upstream VCS
type CommitProvider interface {
	// FetchCommitHistory returns the newest commits of the default branch.
	// It over-fetches relative to the desired result size so that author
	// filtering downstream still has enough material to work with.
	FetchCommitHistory(ctx context.Context, owner, repo string, desired int) ([]Commit, error)

	// GetCommitFiles returns the file changes of a single commit
	GetCommitFiles(ctx context.Context, owner, repo, sha string) ([]FileChange, error)
}

// AgentAPI is a single text-completion call against an LLM
type AgentAPI interface {
	CallAPI(ctx context.Context, req APIRequest) (APIResponse, error)
}

// CommitStore persists commits and their file changes idempotently
type CommitStore interface {
	// SaveCommit stores a commit under its hash if it is not known yet.
	// Existing records are left untouched; created reports whether a new
	// record was written.
	SaveCommit(ctx context.Context, repo Repository, commit Commit) (created bool, err error)

	// SetCommitFiles attaches file changes to a commit record. Called only
	// for commits SaveCommit reported as created.
	SetCommitFiles(ctx context.Context, hash string, files []FileChange) error

	// ListCommits returns stored commits for a repository, newest first,
	// optionally filtered by author display name, capped at count.
	// An unknown repository yields an empty result, not an error.
	ListCommits(ctx context.Context, repo Repository, author string, count int) ([]CommitRecord, error)

	// GetCommit returns one stored commit with its file changes,
	// ErrNotFound when the hash is unknown.
	GetCommit(ctx context.Context, hash string) (CommitRecord, error)
}

// AnalysisCache persists one analysis result per (repository, username)
type AnalysisCache interface {
	// GetAnalysis returns the stored record for the key, ErrNotFound when absent
	GetAnalysis(ctx context.Context, key AnalysisKey) (AnalysisRecord, error)

	// UpsertAnalysis replaces any previous record for the same key
	UpsertAnalysis(ctx context.Context, key AnalysisKey, commitCount int, payload AnalysisPayload) (AnalysisRecord, error)

	ListAnalyses(ctx context.Context) ([]AnalysisRecord, error)
	GetAnalysisByID(ctx context.Context, id string) (AnalysisRecord, error)

	// DeleteAnalysis removes a record, ErrNotFound for an unknown id
	DeleteAnalysis(ctx context.Context, id string) error
}

// Store is the full persistence surface backing the pipeline
type Store interface {
	CommitStore
	AnalysisCache
}
