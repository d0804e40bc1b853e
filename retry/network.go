package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// IsNetworkError checks for transport-level failures: timeouts, refused or
// reset connections and DNS errors. The executor does not retry these; they
// are reported as connectivity errors.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	// Check for timeout errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	errMsg := strings.ToLower(err.Error())
	networkPatterns := []string{
		"connection reset",
		"connection refused",
		"no such host",
		"network is unreachable",
		"failed to fetch",
		"i/o timeout",
		"tls handshake",
	}
	for _, pattern := range networkPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
