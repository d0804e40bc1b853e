package google

import (
	"context"
	"fmt"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/models"
	"google.golang.org/genai"
)

// NewProber returns a Prober that validates a key with a one-word request
// to the probe model.
func NewProber() genstudio.Prober {
	return genstudio.ProberFunc(probe)
}

func probe(ctx context.Context, secret string) genstudio.ProbeResult {
	c, err := New(ctx, secret)
	if err != nil {
		return genstudio.ProbeResult{Status: genstudio.ProbeFailed, Err: err}
	}
	_, err = c.GenerateContent(ctx, models.ProbeModel, genai.Text("hi"), nil)
	return probeResult(err)
}

// probeResult maps the outcome of the probe call. Only a rejection of the key
// itself is a verdict of invalid; anything else leaves the key unjudged.
func probeResult(err error) genstudio.ProbeResult {
	if err == nil {
		return genstudio.ProbeResult{Status: genstudio.ProbeValid}
	}
	if genstudio.KindOf(err) == genstudio.KindAuth {
		return genstudio.ProbeResult{Status: genstudio.ProbeInvalid, Err: err}
	}
	return genstudio.ProbeResult{Status: genstudio.ProbeFailed, Err: fmt.Errorf("probe %s: %w", models.ProbeModel, err)}
}
