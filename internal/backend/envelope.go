package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "sss/cli/internal/errors"
)

// RsData is the envelope every identity API response is wrapped in.
type RsData[T any] struct {
	ResultCode string `json:"resultCode"`
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
	Data       T      `json:"data"`
}

// ItemBody is the data shape of single-item responses.
type ItemBody[T any] struct {
	Item T `json:"item"`
}

// maxErrorBody caps how much of a failed response is read into an error.
const maxErrorBody = 4 << 10

// decodeItem decodes an RsData[ItemBody[T]] body and returns the item.
func decodeItem[T any](r io.Reader, op string) (*T, error) {
	var env RsData[*ItemBody[*T]]
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, apperrors.Wrap(apperrors.DecodeFailed, op, err)
	}
	if env.Data == nil {
		return nil, nil
	}
	return env.Data.Item, nil
}

// statusError builds an error for a non-success response, preferring the
// server-provided msg over the raw body.
func statusError(resp *http.Response, op string) *apperrors.E {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(b))

	var env RsData[json.RawMessage]
	if err := json.Unmarshal(b, &env); err == nil && env.Msg != "" {
		msg = env.Msg
	}

	e := apperrors.WithStatus(resp.StatusCode, fmt.Sprintf("%s failed: %d %s", op, resp.StatusCode, msg))
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		e.Kind = apperrors.Unauthorized
	}
	return e
}

// isSuccess reports whether status is 2xx.
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
