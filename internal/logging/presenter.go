package logging

import (
	"fmt"

	apperrors "sss/cli/internal/errors"
)

// summaries replace the raw error text for kinds whose detail is noise to a
// person reading a toast or a shell line.
var summaries = map[apperrors.Kind]string{
	apperrors.TransportFailed:     "the server could not be reached",
	apperrors.Unauthorized:        "the username or password was rejected",
	apperrors.DecodeFailed:        "the server sent an unreadable answer",
	apperrors.KeychainUnavailable: "the system keychain is unavailable",
}

// PresentError renders err as one line prefixed with action. Typed errors of
// a known kind get a fixed summary; anything else keeps its text, masked.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	msg, ok := summaries[apperrors.KindOf(err)]
	if !ok {
		msg = Mask(err.Error())
	}
	if action == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", action, msg)
}
