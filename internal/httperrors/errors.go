// Package httperrors turns identity API and network failures into
// user-friendly terminal messages.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "sss/cli/internal/errors"
)

// Category is the user-facing class of a failure.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Server
	Rejected
)

// Classify reports which category err falls into.
func Classify(err error) Category {
	if err == nil {
		return Generic
	}
	switch {
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isTLSError(err):
		return TLS
	}

	var e *apperrors.E
	if errors.As(err, &e) {
		if e.Kind == apperrors.Unauthorized {
			return Rejected
		}
		if e.Status >= 500 {
			return Server
		}
	}
	if isServerError(err.Error()) {
		return Server
	}
	return Generic
}

// FormatNetworkError prints a friendly explanation of err to stdout and
// returns err wrapped for logging. action describes what was being done,
// e.g. "logging in"; host is the API host shown in hints.
func FormatNetworkError(err error, action, host string) error {
	if err == nil {
		return nil
	}
	Present(os.Stdout, err, action, host)
	return fmt.Errorf("network error: %w", err)
}

// Present writes the explanation of err to w.
func Present(w io.Writer, err error, action, host string) {
	if w == nil {
		w = io.Discard
	}
	if host == "" {
		host = "the identity server"
	}
	p := func(format string, a ...any) { fmt.Fprint(w, pterm.Sprintf(format, a...)) }

	switch Classify(err) {
	case Timeout:
		p("⏱️  Connection timeout while %s\n\n", action)
		p("%s took too long to respond. This could mean:\n", host)
		p("  • Slow internet connection\n")
		p("  • Server is under heavy load\n\n")
		p("Please try again in a few moments.\n")
	case DNS:
		p("🌐 Cannot resolve server address while %s\n\n", action)
		p("Unable to look up %s. Check that SSS_CORE_API_BASE_URL is correct\n", host)
		p("and that your DNS settings work.\n")
	case ConnectionRefused:
		p("🚫 Connection refused while %s\n\n", action)
		p("%s is not accepting connections. Is the API running on that port?\n", host)
	case TLS:
		p("🔒 Secure connection failed while %s\n\n", action)
		p("Cannot establish HTTPS with %s. Check the certificate,\n", host)
		p("proxy settings, and your system clock.\n")
	case Server:
		p("⚠️  Server error while %s\n\n", action)
		p("%s encountered an internal error. This is not a problem with\n", host)
		p("your setup. Please try again in a few minutes.\n")
	case Rejected:
		p("🔑 %s rejected the request while %s\n\n", host, action)
		p("Check your username and password, or log in again.\n")
	default:
		p("❌ Request failed while %s\n\n", action)
		p("Please check your internet connection and that %s is reachable.\n", host)
		if details := err.Error(); details != "" {
			if len(details) > 100 {
				details = details[:100] + "..."
			}
			p("Technical details: %s\n", details)
		}
	}
	p("\n")
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
