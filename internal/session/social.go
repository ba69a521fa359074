package session

import "net/url"

// Provider identifies a social identity provider.
type Provider string

const (
	Kakao  Provider = "kakao"
	Google Provider = "google"
)

// Providers lists the providers the identity API supports.
func Providers() []Provider {
	return []Provider{Kakao, Google}
}

// SocialLoginURL returns the URL that starts a social login with p. Both
// configured base URLs are inserted as given. After
// the provider flow the API redirects to the front-end callback page, which
// receives the provider in the provierTypeCode parameter (spelled as the
// server expects it).
func (f *Facade) SocialLoginURL(p Provider) string {
	return f.cfg.APIBaseURL +
		"/member/socialLogin/" + string(p) +
		"?redirectUrl=" + url.QueryEscape(f.cfg.FrontBaseURL) +
		"/member/socialLoginCallback?provierTypeCode=" + string(p)
}

// KakaoLoginURL returns the Kakao login URL.
func (f *Facade) KakaoLoginURL() string { return f.SocialLoginURL(Kakao) }

// GoogleLoginURL returns the Google login URL.
func (f *Facade) GoogleLoginURL() string { return f.SocialLoginURL(Google) }
