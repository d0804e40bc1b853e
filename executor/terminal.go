package executor

import (
	"context"
	"errors"
	"strings"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/retry"
	"google.golang.org/genai"
)

var safetyPatterns = []string{"safety", "blocked", "prohibited_content"}

// Terminal maps err to the *genstudio.Error surfaced to the caller, tagging
// it with action. Errors that already carry a kind keep it.
func Terminal(action string, err error) *genstudio.Error {
	if err == nil {
		return nil
	}

	var ge *genstudio.Error
	if errors.As(err, &ge) && ge.Kind != "" && ge.Kind != genstudio.KindUnknown {
		out := *ge
		if out.Op == "" {
			out.Op = action
		}
		return &out
	}

	out := &genstudio.Error{Op: action, Msg: err.Error(), Code: statusCode(err), Cause: err}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		out.Kind = genstudio.KindCanceled
	case isSafety(err):
		out.Kind = genstudio.KindSafety
	default:
		switch retry.Classify(err) {
		case retry.ClassQuota:
			out.Kind = genstudio.KindQuota
		case retry.ClassAuth:
			out.Kind = genstudio.KindAuth
		default:
			if retry.IsNetworkError(err) {
				out.Kind = genstudio.KindNetwork
			} else {
				out.Kind = genstudio.KindUnknown
			}
		}
	}
	return out
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

func isSafety(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range safetyPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
