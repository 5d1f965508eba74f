package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// ListCastCmd creates the listCast command
func ListCastCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCast",
		Short: "List the company cast roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cast []model.CastMember
			source := "roster sheet"

			if app.RosterClient != nil {
				fetched, err := app.RosterClient.ListCast(app.Cfg)
				if err == nil {
					cast = fetched
				} else {
					app.Logger.Warn("Roster fetch failed, showing fallback roster")
				}
			}
			if cast == nil {
				cast = app.Cfg.FallbackRoster()
				source = "fallback roster"
			}

			fmt.Printf("\nFound %d cast members (%s):\n\n", len(cast), source)
			for _, member := range cast {
				roles := make([]string, len(member.EligibleRoles))
				for i, role := range member.EligibleRoles {
					roles[i] = string(role)
				}
				fmt.Printf("- %-10s %s\n", member.Name, strings.Join(roles, ", "))
			}
			fmt.Println()

			return nil
		},
	}
}
