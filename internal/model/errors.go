package model

import "errors"

// Error kinds surfaced by the pipeline. Callsites wrap these with errm so
// callers classify with errors.Is while keeping the full context chain.
var (
	// ErrUpstreamUnavailable covers network failures and non-2xx responses
	// from the GitHub history endpoint
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrGraphQL is an explicit error list inside a 200 GraphQL response
	ErrGraphQL = errors.New("graphql error")

	// ErrSchema means the response lacked the expected shape
	ErrSchema = errors.New("unexpected response schema")

	ErrLLMUnavailable = errors.New("llm unavailable")
	ErrLLMResponse    = errors.New("llm response error")

	// ErrExtraction means no JSON was found in the model reply, or the
	// found span did not parse
	ErrExtraction = errors.New("no valid json in llm reply")

	ErrMissingConfig = errors.New("missing configuration")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("invalid request")
)
