package httperrors

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "sss/cli/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: Timeout},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "api.invalid"}, want: DNS},
		{name: "refused", err: errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), want: ConnectionRefused},
		{name: "tls", err: errors.New("x509: certificate signed by unknown authority"), want: TLS},
		{name: "api 502", err: apperrors.WithStatus(502, "bad gateway upstream"), want: Server},
		{name: "wrapped transport", err: apperrors.Wrap(apperrors.TransportFailed, "get-me", context.DeadlineExceeded), want: Timeout},
		{name: "rejected", err: apperrors.New(apperrors.Unauthorized, "wrong password"), want: Rejected},
		{name: "other", err: errors.New("boom"), want: Generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestPresentMentionsHostAndAction(t *testing.T) {
	var buf bytes.Buffer
	Present(&buf, errors.New("connection refused"), "logging in", "localhost:8080")

	out := buf.String()
	assert.Contains(t, out, "logging in")
	assert.Contains(t, out, "localhost:8080")
}

func TestPresentTruncatesDetails(t *testing.T) {
	var buf bytes.Buffer
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	Present(&buf, errors.New(string(long)), "checking session", "")

	assert.Contains(t, buf.String(), "the identity server")
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), string(long))
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "api.example.com:8080", ExtractHostFromURL("http://api.example.com:8080/x"))
	assert.Equal(t, "server", ExtractHostFromURL(""))
}
