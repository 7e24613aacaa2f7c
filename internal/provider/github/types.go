package github

import "time"

// GraphQL request/response structures for the commit history query

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

type historyResponse struct {
	Data   *historyData   `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

type historyData struct {
	Repository *repositoryNode `json:"repository"`
}

type repositoryNode struct {
	DefaultBranchRef *branchRefNode `json:"defaultBranchRef"`
}

type branchRefNode struct {
	Target *targetNode `json:"target"`
}

type targetNode struct {
	History *historyNode `json:"history"`
}

type historyNode struct {
	Edges []historyEdge `json:"edges"`
}

type historyEdge struct {
	Node commitNode `json:"node"`
}

type commitNode struct {
	OID                     string     `json:"oid"`
	MessageHeadline         string     `json:"messageHeadline"`
	Message                 string     `json:"message"`
	CommittedDate           time.Time  `json:"committedDate"`
	Additions               int        `json:"additions"`
	Deletions               int        `json:"deletions"`
	ChangedFilesIfAvailable int        `json:"changedFilesIfAvailable"`
	Author                  *gitActor  `json:"author"`
	AssociatedPullRequests  *prConnect `json:"associatedPullRequests"`
}

type gitActor struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	User  *githubActor `json:"user"`
}

type githubActor struct {
	Login string `json:"login"`
}

type prConnect struct {
	Nodes []prNode `json:"nodes"`
}

type prNode struct {
	Title  string `json:"title"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}
