package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sss/cli/internal/member"
)

// meCmd prints the member of the current session.
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in member",
	Long: `The me command restores the stored session, asks the identity API who is
logged in, and prints the member's profile. When the API cannot be reached the
last member seen is shown instead and marked as offline.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		d, online, err := currentMember(cmd.Context(), a)
		if err != nil {
			return err
		}
		if d == nil {
			printNotLoggedIn()
			return nil
		}
		admin := a.facade.IsAdmin()
		if !online {
			admin = slices.Contains(d.Authorities, a.facade.Config().AdminAuthority)
		}
		printMember(*d, online, admin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}

// currentMember initialises the facade. If the API fails it falls back to
// the stored snapshot with online false. A nil member means logged out.
func currentMember(ctx context.Context, a *app) (d *member.Dto, online bool, err error) {
	initErr := a.facade.Init(ctx)
	if initErr == nil {
		if a.facade.IsLogout() {
			a.forget()
			return nil, true, nil
		}
		snap := a.facade.Member().Snapshot()
		a.persist()
		return &snap, true, nil
	}

	a.log.Debug("identity API unavailable", "error", initErr)
	if a.store != nil {
		if st, ok, err := a.store.LastMember(); err == nil && ok {
			return &st.Member, false, nil
		}
	}
	return nil, false, a.explain(initErr, "checking your session")
}

func printMember(d member.Dto, online, admin bool) {
	role := "member"
	if admin {
		role = "admin"
	}
	authorities := strings.Join(d.Authorities, ", ")
	if authorities == "" {
		authorities = "-"
	}
	data := pterm.TableData{
		{"Field", "Value"},
		{"ID", strconv.FormatInt(d.ID, 10)},
		{"Name", d.Name},
		{"Role", role},
		{"Authorities", authorities},
		{"Profile image", d.ProfileImgURL},
		{"Created", d.CreateDate},
		{"Modified", d.ModifyDate},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if !online {
		pterm.Warning.Println("offline: showing the last member seen")
	}
	fmt.Println()
}
