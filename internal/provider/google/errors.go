package google

import (
	"errors"
	"strings"

	"github.com/spetersoncode/genstudio"
	"google.golang.org/genai"
)

// wrapError converts a Google GenAI error into a kinded genstudio error.
// Quota and credential failures get their own kinds so the executor can
// rotate keys; other API errors keep their status code. Non-API errors
// (transport failures) are returned as-is.
// Note: genai.APIError doesn't expose headers, so Retry-After is not available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}

	code := apiErr.Code
	msg := apiErr.Message
	if msg == "" {
		msg = err.Error()
	}

	switch categorize(code, apiErr.Status, msg) {
	case genstudio.KindQuota:
		return genstudio.NewQuotaError(msg, code, err)
	case genstudio.KindAuth:
		return genstudio.NewAuthError(msg, code, err)
	default:
		return &genstudio.Error{Kind: genstudio.KindUnknown, Msg: msg, Code: code, Cause: err}
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

// categorize determines the error kind from the HTTP status code, the RPC
// status and the message.
func categorize(code int, status, msg string) genstudio.Kind {
	switch {
	case code == 429 || status == "RESOURCE_EXHAUSTED":
		return genstudio.KindQuota
	case code == 401 || code == 403 || status == "PERMISSION_DENIED" || status == "UNAUTHENTICATED":
		return genstudio.KindAuth
	case strings.Contains(strings.ToLower(msg), "api key not valid"), strings.Contains(msg, "API_KEY_INVALID"):
		// Gemini answers a bad key with 400 INVALID_ARGUMENT.
		return genstudio.KindAuth
	default:
		return genstudio.KindUnknown
	}
}
