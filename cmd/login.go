package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sss/cli/internal/logging"
	"sss/cli/internal/session"
)

var loginUsername string

// loginCmd authenticates with username and password.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with username and password",
	Long: `The login command asks for a username and password and signs in to the
identity API. The session cookies it receives are stored in the OS keychain so
later commands stay logged in.

The password is read without echo. Set SSS_PASSWORD to skip the prompt.
If a valid session already exists, the command reports it and exits.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := a.facade.Init(ctx); err == nil && a.facade.IsLogin() {
			fmt.Printf("Already logged in as %s\n", a.facade.Member().Name())
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		username := loginUsername
		if username == "" {
			if username, err = prompt(reader, "Username: "); err != nil {
				return err
			}
		}
		password := os.Getenv("SSS_PASSWORD")
		if password == "" {
			if password, err = promptPassword(reader, "Password: "); err != nil {
				return err
			}
		}
		if username == "" || password == "" {
			return errors.New("username and password are required")
		}

		stop := startSpinner("Signing in")
		err = a.facade.Login(ctx, username, password)
		stop()
		if err != nil {
			a.facade.NotifyError(logging.PresentError("Login failed", err))
			return a.explain(err, "logging in")
		}

		a.persist()
		a.facade.NotifyAndRedirect(&session.Msg{Msg: greeting(a.facade.Member().Name())}, nil, "/", nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to log in with")
}

// greeting returns a random welcome line for name.
func greeting(name string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s!",
		"🔓 Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], name)
}
