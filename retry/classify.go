package retry

import (
	"errors"
	"net/http"
	"strings"

	"github.com/spetersoncode/genstudio"
	"google.golang.org/genai"
)

// Class is the executor's view of a failure: whether another credential
// might succeed where this one failed.
type Class string

const (
	// ClassQuota is a rate limit or exhausted quota.
	ClassQuota Class = "quota"

	// ClassAuth is a rejected, expired or under-privileged credential.
	ClassAuth Class = "auth"

	// ClassOther is everything rotation cannot fix.
	ClassOther Class = "other"
)

// Retryable returns true for the credential failure classes.
func (c Class) Retryable() bool {
	return c == ClassQuota || c == ClassAuth
}

// statusCoder is an interface for errors that have an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

var (
	quotaPatterns = []string{"429", "quota", "resource_exhausted", "resource exhausted", "rate limit", "too many requests"}
	authPatterns  = []string{"403", "401", "api key", "api_key", "permission", "unauthenticated"}
)

// Classify determines the class of err.
// It first checks a kinded *genstudio.Error, then genai.APIError status codes
// and statuses, then any StatusCode() error, and finally falls back to
// message patterns. Quota is checked before auth.
func Classify(err error) Class {
	if err == nil {
		return ClassOther
	}

	var ge *genstudio.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case genstudio.KindQuota:
			return ClassQuota
		case genstudio.KindAuth:
			return ClassAuth
		case "", genstudio.KindUnknown:
			// Unkinded errors fall through to the heuristics below.
		default:
			return ClassOther
		}
	}

	if c, ok := classifyAPIError(err); ok {
		return c
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		if c, ok := classifyStatus(sc.StatusCode(), ""); ok {
			return c
		}
	}

	return classifyMessage(err.Error())
}

func classifyAPIError(err error) (Class, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, apiErr.Status+" "+apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(apiErrPtr.Code, apiErrPtr.Status+" "+apiErrPtr.Message)
	}
	return "", false
}

// classifyStatus maps an HTTP status code and an optional status/message
// text. A 400 carrying "API key not valid" is an auth failure.
func classifyStatus(code int, text string) (Class, bool) {
	switch code {
	case http.StatusTooManyRequests:
		return ClassQuota, true
	case http.StatusUnauthorized, http.StatusForbidden:
		return ClassAuth, true
	}
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "RESOURCE_EXHAUSTED"):
		return ClassQuota, true
	case strings.Contains(upper, "PERMISSION_DENIED"), strings.Contains(upper, "UNAUTHENTICATED"):
		return ClassAuth, true
	}
	if text != "" {
		if c := classifyMessage(text); c != ClassOther {
			return c, true
		}
	}
	if code > 0 {
		return ClassOther, true
	}
	return "", false
}

func classifyMessage(msg string) Class {
	lower := strings.ToLower(msg)
	for _, p := range quotaPatterns {
		if strings.Contains(lower, p) {
			return ClassQuota
		}
	}
	for _, p := range authPatterns {
		if strings.Contains(lower, p) {
			return ClassAuth
		}
	}
	return ClassOther
}
