package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/services"
)

// ValidateScheduleCmd creates the validateSchedule command
func ValidateScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateSchedule <schedule_id>",
		Short: "Validate a schedule's assignments",
		Long:  "Re-check a stored schedule (generated or hand-edited) against eligibility, fatigue and fairness rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]

			app.Logger.Debug("validateSchedule command", zap.String("schedule_id", scheduleID))

			result, err := services.ValidateSchedule(
				app.Ctx,
				app.Database,
				app.rosterClient(),
				app.Cfg,
				app.Logger,
				scheduleID,
			)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			comprehensive := result.Comprehensive

			fmt.Printf("\n🔍 Schedule Validation Results\n\n")
			fmt.Printf("Schedule ID: %s\n", result.ScheduleID)
			if result.Basic.IsValid {
				fmt.Printf("Status:      ✅ VALID\n")
			} else {
				fmt.Printf("Status:      ❌ INVALID\n")
			}
			fmt.Printf("Score:       %d/100\n\n", comprehensive.OverallScore)

			if len(result.Basic.Errors) > 0 {
				fmt.Printf("❌ Errors (%d):\n", len(result.Basic.Errors))
				for _, message := range result.Basic.Errors {
					fmt.Printf("  • %s\n", message)
				}
				fmt.Println()
			}

			if len(result.Basic.Warnings) > 0 {
				fmt.Printf("⚠️  Warnings (%d):\n", len(result.Basic.Warnings))
				for _, message := range result.Basic.Warnings {
					fmt.Printf("  • %s\n", message)
				}
				fmt.Println()
			}

			if len(comprehensive.LoadBalancing) > 0 {
				fmt.Printf("Load balancing:\n")
				for _, entry := range comprehensive.LoadBalancing {
					fmt.Printf("  %-10s %d show(s) - %s\n", entry.Performer, entry.ShowCount, entry.Status)
				}
				fmt.Println()
			}

			if len(comprehensive.Recommendations) > 0 {
				fmt.Printf("💡 Recommendations:\n")
				for _, recommendation := range comprehensive.Recommendations {
					fmt.Printf("  • %s\n", recommendation)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
