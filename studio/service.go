// Package studio implements the generation operations of the creative
// studio: image generation and editing, prompt and script writing, speech
// synthesis and video generation.
//
// Operations are stateless request/response mappings. Every remote call goes
// through the executor, so quota and credential failures anywhere in the
// operation set share one rotation policy. Response-shape validation happens
// here; everything else propagates unchanged.
package studio

import (
	"context"
	"log/slog"
	"time"

	"github.com/spetersoncode/genstudio/executor"
	"github.com/spetersoncode/genstudio/models"
	"golang.org/x/time/rate"
)

// DefaultPollInterval is the delay between video operation polls.
const DefaultPollInterval = 5 * time.Second

// Preferences supplies the model for each selectable capability.
// *models.Store satisfies it.
type Preferences interface {
	Load(ctx context.Context) (models.Preferences, error)
}

var _ Preferences = (*models.Store)(nil)

// Service runs studio operations through an executor.
type Service struct {
	exec         *executor.Executor
	prefs        Preferences
	pacer        *rate.Limiter
	pollInterval time.Duration
	speechModel  string
	videoModel   string
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPacing spaces the sequential calls of multi-image operations at least
// every apart. Zero disables pacing.
func WithPacing(every time.Duration) Option {
	return func(s *Service) {
		if every <= 0 {
			s.pacer = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.pacer = rate.NewLimiter(rate.Every(every), 1)
	}
}

// WithPollInterval sets the delay between video operation polls.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		s.pollInterval = d
	}
}

// WithSpeechModel overrides the speech synthesis model.
func WithSpeechModel(model string) Option {
	return func(s *Service) {
		s.speechModel = model
	}
}

// WithVideoModel overrides the video generation model.
func WithVideoModel(model string) Option {
	return func(s *Service) {
		s.videoModel = model
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service.
func New(exec *executor.Executor, prefs Preferences, opts ...Option) *Service {
	s := &Service{
		exec:         exec,
		prefs:        prefs,
		pacer:        rate.NewLimiter(rate.Inf, 1),
		pollInterval: DefaultPollInterval,
		speechModel:  models.SpeechModel,
		videoModel:   models.VideoModel,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// model returns the preferred model for capability. Preferences are read at
// call time; a read failure falls back to the defaults.
func (s *Service) model(ctx context.Context, capability models.Capability) string {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load model preferences, using defaults", "error", err)
		p = models.Defaults()
	}
	return p.For(capability)
}
