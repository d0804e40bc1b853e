package genstudio

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// Provider is a live client bound to one credential. It exposes the handful
// of generative calls the studio operations need.
type Provider interface {
	// GenerateContent runs a Gemini content generation request.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	// GenerateImages runs an Imagen text-to-image request.
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)

	// GenerateVideos starts a long-running video generation job.
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)

	// GetVideosOperation refreshes the state of a video generation job.
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// ProviderFactory builds a Provider bound to the given secret.
type ProviderFactory func(ctx context.Context, secret string) (Provider, error)

// ProbeStatus is the outcome of a credential validation probe.
type ProbeStatus string

const (
	// ProbeValid means the secret authenticated.
	ProbeValid ProbeStatus = "valid"
	// ProbeInvalid means the provider rejected the secret itself.
	ProbeInvalid ProbeStatus = "invalid"
	// ProbeFailed means the probe could not reach a verdict (network, quota, server error).
	ProbeFailed ProbeStatus = "failed"
)

// ErrProbeFailed is wrapped by errors from probes that reached no verdict.
var ErrProbeFailed = errors.New("credential probe failed")

// ProbeResult is the tagged result of validating a secret.
type ProbeResult struct {
	Status ProbeStatus
	Err    error // set for ProbeInvalid and ProbeFailed
}

// Prober validates a secret with a minimal authenticated call.
type Prober interface {
	Probe(ctx context.Context, secret string) ProbeResult
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, secret string) ProbeResult

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, secret string) ProbeResult {
	return f(ctx, secret)
}
