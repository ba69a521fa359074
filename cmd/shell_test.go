package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sss/cli/internal/backend"
	"sss/cli/internal/config"
	"sss/cli/internal/logging"
	"sss/cli/internal/member"
	"sss/cli/internal/navigation"
	"sss/cli/internal/notify"
	"sss/cli/internal/reactive"
	"sss/cli/internal/session"
)

func newTestApp(t *testing.T, logoutStatus int, out *bytes.Buffer) *app {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/members/logout":
			w.WriteHeader(logoutStatus)
			_, _ = w.Write([]byte(`{"resultCode":"200-1","statusCode":200,"msg":"bye"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{APIBaseURL: srv.URL, FrontBaseURL: "http://front.test"}
	rt := reactive.NewRuntime()
	history := navigation.NewHistory(rt, cfg.FrontBaseURL)
	tray := notify.NewTray(notify.WithWriter(out))
	f := session.New(rt, backend.New(srv.URL), history, tray, session.Config{
		APIBaseURL:   cfg.APIBaseURL,
		FrontBaseURL: cfg.FrontBaseURL,
	})
	a := &app{cfg: cfg, log: logging.Discard(), rt: rt, history: history, tray: tray, facade: f}
	t.Cleanup(a.Close)
	return a
}

func admin() member.Dto {
	return member.Dto{ID: 7, Name: "Ann", Authorities: []string{"ROLE_ADMIN"}}
}

func TestShellGuestIsSentOutOfAdminArea(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, http.StatusOK, &out)

	in := strings.NewReader("go /adm/users\nadmin?\nquit\n")
	require.NoError(t, runShell(context.Background(), a, in, &out))

	s := out.String()
	assert.Contains(t, s, "/adm/users")
	assert.Contains(t, s, "Admins only")
	assert.Contains(t, s, "admin area: false, admin: false")
	assert.Equal(t, "/", a.history.Path())
}

func TestShellAdminNavigatesAndLogsOut(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, http.StatusOK, &out)
	a.facade.SetLoggedIn(admin())

	in := strings.NewReader("go /adm/users\nadmin?\nme\nlogout\n")
	require.NoError(t, runShell(context.Background(), a, in, &out))

	s := out.String()
	assert.Contains(t, s, "Ann [admin]")
	assert.Contains(t, s, "admin area: true, admin: true")
	assert.Contains(t, s, "#7 Ann [ROLE_ADMIN]")
	assert.Contains(t, s, "Logged out")
	assert.True(t, a.facade.IsLogout())
	assert.Equal(t, "/", a.history.Path())
}

func TestShellLogoutFailureKeepsSession(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, http.StatusInternalServerError, &out)
	a.facade.SetLoggedIn(admin())

	in := strings.NewReader("go /posts\nlogout\nquit\n")
	require.NoError(t, runShell(context.Background(), a, in, &out))

	assert.True(t, a.facade.IsLogin())
	assert.Equal(t, "/posts", a.history.Path())
}

func TestShellNavigationCommands(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, http.StatusOK, &out)
	ctx := context.Background()

	in := strings.NewReader("go /a\ngo /b\nback\nreplace /c\nreload\nsocial kakao\nbogus\nquit\n")
	require.NoError(t, runShell(ctx, a, in, &out))

	s := out.String()
	assert.Equal(t, []string{"/", "/redirect?url=http%3A%2F%2Ffront.test%2Fc"}, a.history.Entries())
	assert.Contains(t, s, "/member/socialLogin/kakao?redirectUrl=")
	assert.Contains(t, s, `unknown command "bogus"`)

	_, err := shellExec(ctx, a, &out, "back", nil)
	require.NoError(t, err)
	_, err = shellExec(ctx, a, &out, "back", nil)
	assert.EqualError(t, err, "already at the first page")

	_, err = shellExec(ctx, a, &out, "go", nil)
	assert.EqualError(t, err, "usage: go <path>")
}

func TestShellSocialCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut string
		wantErr string
	}{
		{name: "kakao", args: []string{"kakao"}, wantOut: "/member/socialLogin/kakao?redirectUrl="},
		{name: "upper case google", args: []string{"GOOGLE"}, wantOut: "/member/socialLogin/google?redirectUrl="},
		{name: "unsupported provider", args: []string{"naver"}, wantErr: `unknown provider "naver" (supported: kakao, google)`},
		{name: "missing provider", wantErr: "usage: social <provider>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := newTestApp(t, http.StatusOK, &out)
			out.Reset()

			_, err := shellExec(context.Background(), a, &out, "social", tt.args)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestShellPrintsErrorsWithCommandName(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, http.StatusOK, &out)

	in := strings.NewReader("social naver\nquit\n")
	require.NoError(t, runShell(context.Background(), a, in, &out))

	assert.Contains(t, out.String(), `social: unknown provider "naver"`)
	assert.NotContains(t, out.String(), "/member/socialLogin/naver")
}
