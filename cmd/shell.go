package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sss/cli/internal/logging"
	"sss/cli/internal/navigation"
	"sss/cli/internal/session"
)

// shellCmd starts an interactive session.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session with navigation and notifications",
	Long: `The shell command restores the session and opens a prompt that behaves like
the web client: 'go' and 'replace' move between pages, 'back' walks the
history, 'reload' bounces through the redirect route, and the navigation bar
is redrawn whenever the page or the logged-in member changes. Pages under the
admin prefix are only available to admins.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.facade.Init(cmd.Context()); err != nil {
			_ = a.explain(err, "restoring your session")
		}
		return runShell(cmd.Context(), a, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `commands:
  go <path>          navigate to path
  replace <path>     navigate, replacing the current entry
  back               go back one entry
  reload             reload the current page
  me                 show the logged-in member
  admin?             is this an admin page, and are you an admin
  social <provider>  print a social login link
  toasts             list visible notifications
  logout             end the session
  help               show this help
  quit               leave the shell`

// runShell reads commands from in until EOF or quit.
func runShell(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	f := a.facade
	stopBar := f.Effect(func() { fmt.Fprintln(out, navBar(a)) })
	defer stopBar()
	stopGuard := f.Effect(func() { guardAdminArea(a) })
	defer stopGuard()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "sss> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		quit, err := shellExec(ctx, a, out, fields[0], fields[1:])
		if err != nil {
			fmt.Fprintln(out, pterm.Error.Sprint(logging.PresentError(fields[0], err)))
		}
		if quit {
			return nil
		}
	}
}

func shellExec(ctx context.Context, a *app, out io.Writer, name string, args []string) (quit bool, err error) {
	f := a.facade
	arg := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("usage: %s <path>", name)
		}
		return args[0], nil
	}

	switch name {
	case "go":
		p, err := arg()
		if err != nil {
			return false, err
		}
		f.Go(p)
	case "replace":
		p, err := arg()
		if err != nil {
			return false, err
		}
		f.Replace(p)
	case "back":
		if err := a.history.Back(); err != nil {
			if errors.Is(err, navigation.ErrNoHistory) {
				return false, errors.New("already at the first page")
			}
			return false, err
		}
	case "reload":
		f.Reload()
	case "me":
		if f.IsLogout() {
			fmt.Fprintln(out, "not logged in")
			return false, nil
		}
		d := f.Member().Snapshot()
		fmt.Fprintf(out, "#%d %s %v\n", d.ID, d.Name, d.Authorities)
	case "admin?":
		path := a.history.Path()
		fmt.Fprintf(out, "admin area: %t, admin: %t\n", f.IsAdminArea(path), f.IsAdmin())
	case "social":
		if len(args) != 1 {
			return false, errors.New("usage: social <provider>")
		}
		p := session.Provider(strings.ToLower(args[0]))
		if !slices.Contains(session.Providers(), p) {
			return false, fmt.Errorf("unknown provider %q (supported: %s)", args[0], strings.Join(providerNames(), ", "))
		}
		fmt.Fprintln(out, f.SocialLoginURL(p))
	case "toasts":
		for _, t := range a.tray.Active() {
			fmt.Fprintf(out, "%s  %s\n", t.ID, t.Message)
		}
	case "logout":
		if err := f.LogoutAndRedirect(ctx, "/"); err != nil {
			return false, a.explain(err, "logging out")
		}
		a.forget()
		f.NotifyInfo("Logged out")
	case "help", "?":
		fmt.Fprintln(out, shellHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try 'help'", name)
	}
	return false, nil
}

// navBar renders the current path and identity. Called inside an effect, so
// it re-renders when either changes.
func navBar(a *app) string {
	f := a.facade
	path := a.history.Path()

	who := "guest (login | kakao | google)"
	if f.IsLogin() {
		who = f.Member().Name()
		if f.IsAdmin() {
			who += " [admin]"
		}
	}
	area := "user"
	if f.IsAdminArea(path) {
		area = "admin"
	}
	return pterm.FgCyan.Sprintf("── %s │ %s │ %s area ──", path, who, area)
}

// guardAdminArea sends non-admins out of the admin area.
func guardAdminArea(a *app) {
	f := a.facade
	if f.IsAdminArea(a.history.Path()) && !f.IsAdmin() {
		f.NotifyAndRedirect(nil, &session.Msg{Msg: "Admins only"}, "/", nil)
	}
}
