package model

import "time"

// Repository identifies a GitHub repository by owner and name
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Key returns the canonical "owner/name" form used as storage identity
func (r Repository) Key() string {
	return r.Owner + "/" + r.Name
}

// CommitAuthor holds the identity candidates attached to a commit
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Login string `json:"login"` // linked GitHub account, may be empty
}

// DisplayName resolves to the linked login, then the free-text name, then "Unknown"
func (a CommitAuthor) DisplayName() string {
	if a.Login != "" {
		return a.Login
	}
	if a.Name != "" {
		return a.Name
	}
	return "Unknown"
}

// PullRequestRef is the pull request associated with a commit, if any
type PullRequestRef struct {
	Title  string `json:"title"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Commit represents a single commit from the repository history
type Commit struct {
	Hash        string          `json:"hash"`
	Headline    string          `json:"headline"`
	Message     string          `json:"message"`
	CommittedAt time.Time       `json:"committed_at"`
	Author      CommitAuthor    `json:"author"`
	PullRequest *PullRequestRef `json:"pull_request,omitempty"`

	Stats CommitStats `json:"stats"`
}

// CommitStats represents commit statistics
type CommitStats struct {
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
	ChangedFiles int `json:"changed_files"`
}

// FileChangeStatus is the kind of change a commit made to a file
type FileChangeStatus string

const (
	FileAdded    FileChangeStatus = "added"
	FileModified FileChangeStatus = "modified"
	FileRemoved  FileChangeStatus = "removed"
)

// FileChange represents one changed file inside a commit.
// File changes are written once, together with the first insert of their
// parent commit, and never refreshed afterwards.
type FileChange struct {
	Filename  string           `json:"filename"`
	Status    FileChangeStatus `json:"status"`
	Additions int              `json:"additions"`
	Deletions int              `json:"deletions"`
	Patch     string           `json:"patch,omitempty"`
}

// CommitRecord is a stored commit with its resolved author display name
type CommitRecord struct {
	Hash        string      `json:"hash"`
	Repository  Repository  `json:"repository"`
	Author      string      `json:"author"`
	Message     string      `json:"message"`
	CommittedAt time.Time   `json:"committed_at"`
	Stats       CommitStats `json:"stats"`

	Files []FileChange `json:"files,omitempty"`
}
