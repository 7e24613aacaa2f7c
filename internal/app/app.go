package app

import (
	"context"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/agent"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/overview"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/provider/github"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/server"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/storage"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// GitFolio is the main service that orchestrates all components
type GitFolio struct {
	provider model.CommitProvider
	store    *storage.RedisStore
	analyzer *agent.Agent
	service  *overview.Service
	server   *server.Server

	cfg Config
	log logze.Logger
}

// New creates a new contribution overview service
func New(ctx contem.Context, cfg Config) (*GitFolio, error) {
	service := &GitFolio{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

// StartServer starts the HTTP API server
func (s *GitFolio) StartServer(ctx context.Context) error {
	if err := s.server.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start API server")
	}
	return nil
}

// RunOverview generates a contribution overview outside of the HTTP flow
// and returns the rendered document.
func (s *GitFolio) RunOverview(ctx context.Context, owner, repo, username string) (string, error) {
	result, err := s.service.Generate(ctx, overview.GenerateRequest{
		Owner:    owner,
		Repo:     repo,
		Username: username,
	})
	if err != nil {
		return "", errm.Wrap(err, "failed to generate overview")
	}
	return result.Markdown, nil
}

func (s *GitFolio) init(ctx contem.Context, cfg Config) (err error) {

	// Create commit storage
	s.store, err = storage.New(cfg.Storage)
	if err != nil {
		return errm.Wrap(err, "failed to create storage")
	}
	ctx.Add(s.store.Close)

	// Create commit provider
	s.provider, err = github.New(cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create commit provider")
	}

	// Create analysis agent with the store as its cache
	s.analyzer, err = agent.New(ctx, cfg.Agent, s.store)
	if err != nil {
		return errm.Wrap(err, "failed to create analysis agent")
	}

	// Create the overview service - this is the central orchestrator
	s.service, err = overview.New(cfg.Overview, s.provider, s.analyzer, s.store)
	if err != nil {
		return errm.Wrap(err, "failed to create overview service")
	}

	// Create API server
	s.server, err = server.New(cfg.Server, s.service)
	if err != nil {
		return errm.Wrap(err, "failed to create API server")
	}
	ctx.Add(s.server.Stop)

	return nil
}
