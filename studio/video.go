package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/executor"
	"google.golang.org/genai"
)

// VideoRequest describes a video generation job.
type VideoRequest struct {
	Prompt string
	Style  string
	Ratio  genstudio.AspectRatio
	// Image optionally seeds the first frame.
	Image *genstudio.Image
}

// VideoResult is the outcome of a finished video operation.
type VideoResult struct {
	URI      string
	Data     []byte
	MIMEType string
}

// StartVideo submits a video generation job and returns its operation
// handle. The handle is not persisted; poll it with PollVideo or WaitVideo.
func (s *Service) StartVideo(ctx context.Context, req VideoRequest) (*genai.GenerateVideosOperation, error) {
	ratio := req.Ratio
	if ratio == "" {
		ratio = genstudio.AspectWide
	}
	var image *genai.Image
	if present(req.Image) {
		image = &genai.Image{ImageBytes: req.Image.Data, MIMEType: req.Image.MIMEType}
	}
	prompt := videoPrompt(req.Prompt, req.Style, ratio)

	return executor.Run(ctx, s.exec, "starting video generation", func(ctx context.Context, p genstudio.Provider) (*genai.GenerateVideosOperation, error) {
		return p.GenerateVideos(ctx, s.videoModel, prompt, image, &genai.GenerateVideosConfig{NumberOfVideos: 1})
	})
}

// PollVideo refreshes op once.
func (s *Service) PollVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if op == nil {
		return nil, invalidInput("video operation is nil")
	}
	return executor.Run(ctx, s.exec, "checking video progress", func(ctx context.Context, p genstudio.Provider) (*genai.GenerateVideosOperation, error) {
		return p.GetVideosOperation(ctx, op)
	})
}

// WaitVideo polls op at the service poll interval until it is done, then
// returns its result or its error payload. Cancel ctx to abandon the job.
func (s *Service) WaitVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*VideoResult, error) {
	if op == nil {
		return nil, invalidInput("video operation is nil")
	}
	for !op.Done {
		timer := time.NewTimer(s.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, executor.Terminal("waiting for video", ctx.Err())
		case <-timer.C:
		}

		next, err := s.PollVideo(ctx, op)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("video operation polled", "operation", next.Name, "done", next.Done)
		op = next
	}
	return VideoOutcome(op)
}

// VideoOutcome extracts the result of a finished operation.
func VideoOutcome(op *genai.GenerateVideosOperation) (*VideoResult, error) {
	if op == nil || !op.Done {
		return nil, invalidInput("video operation is not done")
	}
	if len(op.Error) > 0 {
		return nil, operationError(op.Error)
	}
	if op.Response != nil {
		for _, v := range op.Response.GeneratedVideos {
			if v == nil || v.Video == nil {
				continue
			}
			if v.Video.URI != "" || len(v.Video.VideoBytes) > 0 {
				return &VideoResult{URI: v.Video.URI, Data: v.Video.VideoBytes, MIMEType: v.Video.MIMEType}, nil
			}
		}
		if len(op.Response.RAIMediaFilteredReasons) > 0 {
			return nil, genstudio.NewSafetyError(op.Response.RAIMediaFilteredReasons[0])
		}
	}
	return nil, genstudio.NewError(genstudio.KindEmptyOutput, "video operation finished without a video", nil)
}

// operationError converts a long-running operation error payload
// ({"code": ..., "message": ...}) into a kinded error.
func operationError(payload map[string]any) error {
	msg, _ := payload["message"].(string)
	var code int
	switch c := payload["code"].(type) {
	case float64:
		code = int(c)
	case int:
		code = c
	case int32:
		code = int(c)
	}
	if msg == "" {
		msg = fmt.Sprintf("video generation failed: %v", payload)
	}
	kind := genstudio.KindUnknown
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "safety") || strings.Contains(lower, "responsible ai") {
		kind = genstudio.KindSafety
	}
	return &genstudio.Error{Kind: kind, Op: "generating video", Msg: msg, Code: code}
}
