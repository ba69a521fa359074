// Package logging provides structured logging and safe error presentation.
// Everything that may end up in a log line or on screen goes through Mask,
// which blanks session cookies, tokens, passwords and API keys.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword = regexp.MustCompile(`(?i)("?password"?\s*[=:]\s*"?)([^\s;,"&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reCookie   = regexp.MustCompile(`(?i)((?:accessToken|apiKey|refreshToken|JSESSIONID)=)([^\s;,&]+)`)
	reURLCreds = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@/\s]+)(@)`)
	reAPIKey   = regexp.MustCompile(`(?i)(api_key=)([^\s;&]+)`)
)

// Mask replaces sensitive values in s with "***". Credentials embedded in a
// URL are reduced to "*:*".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "${1}***")
	out = reCookie.ReplaceAllString(out, "${1}***")
	out = reToken.ReplaceAllString(out, "${1}***")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	out = reAPIKey.ReplaceAllString(out, "${1}***")
	for _, k := range []string{"SSS_PASSWORD", "ACCESS_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
