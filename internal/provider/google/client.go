package google

import (
	"context"

	"github.com/spetersoncode/genstudio"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement genstudio.Provider for a
// single API key.
type Client struct {
	client *genai.Client
}

var _ genstudio.Provider = (*Client)(nil)

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Factory is a genstudio.ProviderFactory building a Client per secret.
func Factory(ctx context.Context, secret string) (genstudio.Provider, error) {
	c, err := New(ctx, secret)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GenerateContent runs a Gemini content request.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}
	return resp, nil
}

// GenerateImages runs an Imagen request.
func (c *Client) GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	resp, err := c.client.Models.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return nil, wrapError(err)
	}
	return resp, nil
}

// GenerateVideos starts a Veo job.
func (c *Client) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	op, err := c.client.Models.GenerateVideos(ctx, model, prompt, image, config)
	if err != nil {
		return nil, wrapError(err)
	}
	return op, nil
}

// GetVideosOperation refreshes a Veo job.
func (c *Client) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	next, err := c.client.Operations.GetVideosOperation(ctx, op, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return next, nil
}
