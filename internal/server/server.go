package server

import (
	"context"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/overview"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OverviewService is the pipeline surface exposed over HTTP
type OverviewService interface {
	Generate(ctx context.Context, req overview.GenerateRequest) (overview.GenerateResult, error)
	ListCommits(ctx context.Context, owner, repo, username string, count int) ([]model.CommitRecord, error)
	GetCommitDetail(ctx context.Context, hash string) (model.CommitRecord, error)
	ListAnalyses(ctx context.Context) ([]model.AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id string) (overview.SavedAnalysis, error)
	DeleteAnalysis(ctx context.Context, id string) error
}

// Server exposes the contribution-overview API
type Server struct {
	service OverviewService
	config  Config
	log     logze.Logger
	server  *servex.Server
}

// New creates a new API server
func New(cfg Config, service OverviewService) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		service: service,
		config:  cfg,
		log:     log,
		server:  server,
	}

	server.HandleFunc(cfg.BasePath+"/overview", s.handleGenerate)
	server.HandleFunc(cfg.BasePath+"/commits", s.handleListCommits)
	server.HandleFunc(cfg.BasePath+"/commit", s.handleCommitDetail)
	server.HandleFunc(cfg.BasePath+"/analyses", s.handleListAnalyses)
	server.HandleFunc(cfg.BasePath+"/analysis", s.handleAnalysis)

	return s, nil
}

// Start starts the API server
func (s *Server) Start(ctx context.Context) error {
	if s.config.EnableHTTPS {
		return s.server.StartHTTPS(s.config.Address)
	}
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the API server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type generateResponse struct {
	Success     bool                  `json:"success"`
	Analysis    string                `json:"analysis"`
	RawAnalysis model.AnalysisPayload `json:"raw_analysis"`
	CommitCount int                   `json:"commit_count"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read request body")
		return
	}

	var req overview.GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		ctx.BadRequest(err, "failed to parse request body")
		return
	}

	result, err := s.service.Generate(ctx, req)
	if err != nil {
		s.respondError(ctx, err, "failed to generate overview")
		return
	}

	ctx.Response(http.StatusOK, generateResponse{
		Success:     true,
		Analysis:    result.Markdown,
		RawAnalysis: result.Payload,
		CommitCount: result.CommitCount,
	})
}

func (s *Server) handleListCommits(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodGet {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	count, _ := strconv.Atoi(query.Get("count"))

	records, err := s.service.ListCommits(ctx, query.Get("owner"), query.Get("repo"), query.Get("username"), count)
	if err != nil {
		s.respondError(ctx, err, "failed to list commits")
		return
	}

	ctx.Response(http.StatusOK, map[string]any{
		"success": true,
		"commits": records,
	})
}

func (s *Server) handleCommitDetail(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodGet {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	record, err := s.service.GetCommitDetail(ctx, r.URL.Query().Get("hash"))
	if err != nil {
		s.respondError(ctx, err, "failed to get commit")
		return
	}

	ctx.Response(http.StatusOK, map[string]any{
		"success": true,
		"commit":  record,
	})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodGet {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	records, err := s.service.ListAnalyses(ctx)
	if err != nil {
		s.respondError(ctx, err, "failed to list analyses")
		return
	}

	ctx.Response(http.StatusOK, map[string]any{
		"success":  true,
		"analyses": records,
	})
}

// handleAnalysis serves a single saved analysis by id: GET returns it with
// the rendered document, DELETE removes it.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	id := r.URL.Query().Get("id")

	switch r.Method {
	case http.MethodGet:
		saved, err := s.service.GetAnalysis(ctx, id)
		if err != nil {
			s.respondError(ctx, err, "failed to get analysis")
			return
		}
		ctx.Response(http.StatusOK, map[string]any{
			"success":  true,
			"analysis": saved,
		})

	case http.MethodDelete:
		if err := s.service.DeleteAnalysis(ctx, id); err != nil {
			s.respondError(ctx, err, "failed to delete analysis")
			return
		}
		ctx.Response(http.StatusOK, map[string]any{
			"success": true,
		})

	default:
		ctx.Response(http.StatusMethodNotAllowed)
	}
}

// respondError maps pipeline errors to HTTP statuses
func (s *Server) respondError(ctx *servex.Context, err error, msg string) {
	switch {
	case errm.Is(err, model.ErrValidation):
		ctx.BadRequest(err, msg)
	case errm.Is(err, model.ErrNotFound):
		ctx.NotFound(err, msg)
	default:
		ctx.InternalServerError(err, msg)
	}
}
