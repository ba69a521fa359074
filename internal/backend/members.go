package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	apperrors "sss/cli/internal/errors"
	"sss/cli/internal/logging"
	"sss/cli/internal/member"
)

// GetMe calls GET /api/v1/members/me.
// 401, 403 and 404 mean there is no active session and yield (nil, nil), as
// does a success body without an item or with the anonymous id. Any other
// failure is returned.
func (h *HTTP) GetMe(ctx context.Context) (*member.Dto, error) {
	const op = "get-me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Me, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	h.setStandardHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		h.log.DebugContext(ctx, "no active session", "status", resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp, op)
	}

	item, err := decodeItem[member.Dto](resp.Body, op)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ID == member.AnonymousID {
		return nil, nil
	}
	h.log.DebugContext(ctx, "current member", "id", item.ID)
	return item, nil
}

// Logout calls POST /api/v1/members/logout.
// The payload is ignored; any 2xx counts as acknowledged.
func (h *HTTP) Logout(ctx context.Context) error {
	const op = "logout"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Logout, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	h.setStandardHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return statusError(resp, op)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Login calls POST /api/v1/members/login with { username, password }.
// On success the server sets the session cookies, which the jar keeps.
func (h *HTTP) Login(ctx context.Context, username, password string) (*member.Dto, error) {
	const op = "login"

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Login, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, op, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		e := statusError(resp, op)
		if resp.StatusCode == http.StatusBadRequest {
			e.Kind = apperrors.Unauthorized
		}
		h.log.DebugContext(ctx, "login rejected", "username", username, "error", logging.Mask(e.Error()))
		return nil, e
	}

	item, err := decodeItem[member.Dto](resp.Body, op)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ID == member.AnonymousID {
		return nil, apperrors.New(apperrors.DecodeFailed, "login response carried no member")
	}
	return item, nil
}
