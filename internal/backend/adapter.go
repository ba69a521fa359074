// Package backend provides the client for the remote identity API.
// It defines the API contract the session facade depends on and an HTTP
// implementation that sends session cookies with every request.
package backend

import (
	"context"

	"sss/cli/internal/member"
)

// API defines identity operations the client depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// GetMe returns the member bound to the current session.
	// A nil member with a nil error means there is no active session.
	GetMe(ctx context.Context) (*member.Dto, error)
	// Logout ends the current session on the server. The response payload
	// is ignored; only transport and status failures are reported.
	Logout(ctx context.Context) error
	// Login authenticates with username and password and returns the member
	// the server bound to the new session.
	Login(ctx context.Context, username, password string) (*member.Dto, error)
}
