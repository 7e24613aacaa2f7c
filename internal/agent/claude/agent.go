package claude

import (
	"context"
	"strings"
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel   = "claude-3-5-haiku-20241022"
	defaultBaseURL = "https://api.anthropic.com/v1/messages"

	apiVersion = "2023-06-01"
)

var _ model.AgentAPI = (*Agent)(nil)

// Agent implements the text-completion call using Anthropic's Claude API
type Agent struct {
	cfg model.ModelConfig
	cli *cliex.HTTP
}

// New creates a new Claude agent
func New(ctx context.Context, cli *cliex.HTTP, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.Wrap(model.ErrMissingConfig, "Claude API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)
	cfg.URL = lang.Check(cfg.URL, defaultBaseURL)

	cli.C().SetHeader("x-api-key", cfg.APIKey)
	cli.C().SetHeader("anthropic-version", apiVersion)

	agent := &Agent{
		cfg: cfg,
		cli: cli,
	}

	if cfg.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, errm.Wrap(err, "failed to connect to Claude API")
		}
	}

	return agent, nil
}

// CallAPI makes a request to the Claude API. Transport failures and
// timeouts surface as ErrLLMUnavailable, a completed call with a bad
// status or envelope as ErrLLMResponse.
func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	reqBody := messagesRequest{
		Model:       a.cfg.Model,
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []message{
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
	}

	var respBody messagesResponse
	_, err := a.cli.Post(ctx, a.cfg.URL, reqBody, &respBody)
	if err != nil {
		// cliex folds a non-2xx status into the returned error, so the
		// extracted code separates a completed-but-failed call from a
		// transport failure or timeout
		if cliex.GetCodeFromError(err) != 0 {
			return model.APIResponse{}, errm.Wrap(model.ErrLLMResponse, "claude api request: "+err.Error())
		}
		return model.APIResponse{}, errm.Wrap(model.ErrLLMUnavailable, "claude api request: "+err.Error())
	}

	if respBody.Error != nil {
		return model.APIResponse{}, errm.Wrap(model.ErrLLMResponse, "claude api error: "+respBody.Error.Message)
	}

	if len(respBody.Content) == 0 {
		return model.APIResponse{}, errm.Wrap(model.ErrLLMResponse, "no content in response")
	}

	var responseText strings.Builder
	for _, c := range respBody.Content {
		if c.Type == "text" {
			responseText.WriteString(c.Text)
		}
	}

	out := model.APIResponse{
		CreateTime:       time.Now(),
		Content:          strings.TrimSpace(responseText.String()),
		PromptTokens:     respBody.Usage.InputTokens,
		CompletionTokens: respBody.Usage.OutputTokens,
		TotalTokens:      respBody.Usage.InputTokens + respBody.Usage.OutputTokens,
	}

	return out, nil
}

// testConnection tests the connection to Claude API
func (a *Agent) testConnection(ctx context.Context) error {
	testPrompt := "Respond with 'OK' if you can understand this message."

	_, err := a.CallAPI(ctx, model.APIRequest{
		Prompt:    testPrompt,
		MaxTokens: 10,
	})
	if err != nil {
		return errm.Wrap(err, "connection test failed")
	}

	return nil
}
