package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"sss/cli/internal/session"
)

var socialOpen bool

// socialLoginCmd prints the URL that starts a social login.
var socialLoginCmd = &cobra.Command{
	Use:       "social-login <provider>",
	Short:     "Print the social login URL for a provider",
	Args:      cobra.ExactArgs(1),
	ValidArgs: providerNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := session.Provider(strings.ToLower(args[0]))
		if !slices.Contains(session.Providers(), p) {
			return fmt.Errorf("unknown provider %q (supported: %s)", args[0], strings.Join(providerNames(), ", "))
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		link := a.facade.SocialLoginURL(p)
		fmt.Println("Open this link to continue with", p)
		fmt.Printf("%s\n\n", link)
		if socialOpen {
			openBrowser(link)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(socialLoginCmd)
	socialLoginCmd.Flags().BoolVar(&socialOpen, "open", false, "Open the link in the default browser")
}

func providerNames() []string {
	var names []string
	for _, p := range session.Providers() {
		names = append(names, string(p))
	}
	return names
}
