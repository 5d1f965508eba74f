package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/services"
)

// DefineWeekCmd creates the defineWeek command
func DefineWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defineWeek",
		Short: "Define a new schedule week of shows",
		Long:  "Expand the configured performance recurrence rule into a week of shows and store it as a new schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, _ := cmd.Flags().GetString("week-start")

			result, err := services.DefineWeek(app.Ctx, app.Database, app.Cfg, app.Logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule week created!\n\n")
			fmt.Printf("Schedule ID: %s\n", result.Schedule.ID)
			fmt.Printf("Week Start:  %s\n", result.Schedule.WeekStart)
			fmt.Printf("Shows:       %d\n\n", result.Schedule.ShowCount)

			fmt.Printf("Calendar:\n")
			for _, show := range result.Shows {
				if show.Status == "performance" {
					fmt.Printf("  %s  %s (call %s)\n", show.Date, show.Time, show.CallTime)
				} else {
					fmt.Printf("  %s  %s\n", show.Date, show.Status)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("week-start", "", "Start date for the week (2006-01-02); defaults to the Monday after the latest schedule")

	return cmd
}
