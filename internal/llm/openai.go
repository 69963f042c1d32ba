package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"autodocs/internal/config"
)

// OpenAIClient implements Client using the OpenAI chat completion API,
// against either the public endpoint or an Azure OpenAI deployment.
type OpenAIClient struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIClient builds a client from explicit configuration. Azure
// settings win when complete; otherwise the public API key is used.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UsesAzure() {
		clientCfg := openai.DefaultAzureConfig(cfg.AzureAPIKey, cfg.AzureEndpoint)
		return &OpenAIClient{
			client: openai.NewClientWithConfig(clientCfg),
			model:  cfg.AzureDeployment,
			name:   "azure-openai",
		}, nil
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIOrgID != "" {
		clientCfg.OrgID = cfg.OpenAIOrgID
	}
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		name:   "openai",
	}, nil
}

// Rewrite implements Client.
func (c *OpenAIClient) Rewrite(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}

// Name implements Client.
func (c *OpenAIClient) Name() string {
	return c.name
}
