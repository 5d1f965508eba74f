package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <schedule_id>",
		Short: "Generate cast assignments for a schedule week",
		Long:  "Run the assignment engine to fill every role of every performance, mark OFF performers and allocate RED days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			seed, _ := cmd.Flags().GetInt64("seed")

			app.Logger.Debug("generateSchedule command",
				zap.String("schedule_id", scheduleID),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateSchedule(
				app.Ctx,
				app.Database,
				app.rosterClient(),
				app.Cfg,
				app.Logger,
				scheduleID,
				dryRun,
				seed,
			)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			outcome := result.Outcome

			// Display header
			fmt.Printf("\n🎭 Schedule Generation Results\n\n")
			fmt.Printf("Schedule ID: %s\n", result.ScheduleID)
			fmt.Printf("Shows:       %d\n", result.ShowCount)
			fmt.Printf("Cast:        %d", result.CastSize)
			if result.UsedFallbackRoster {
				fmt.Printf(" (fallback roster)")
			}
			fmt.Println()
			if dryRun {
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			} else if outcome.Success {
				fmt.Printf("Status:      ✅ SUCCESS (saved to database)\n")
			} else if outcome.Partial {
				fmt.Printf("Status:      ⚠️  PARTIAL (saved with unfilled slots)\n")
			} else {
				fmt.Printf("Status:      ❌ FAILED (not saved)\n")
			}
			fmt.Printf("Attempts:    %d\n", outcome.Attempts)
			fmt.Printf("Score:       %d/100\n\n", result.Validation.OverallScore)

			// Display unfilled slots or failure reasons
			if len(outcome.Errors) > 0 {
				fmt.Printf("⚠️  Problems (%d):\n", len(outcome.Errors))
				for _, message := range outcome.Errors {
					fmt.Printf("  • %s\n", message)
				}
				fmt.Println()
			}

			// Display the assignments per show
			perShow := make(map[string][]string)
			redDays := 0
			for _, a := range outcome.Assignments {
				if a.Role == model.RoleOff {
					if a.IsRedDay {
						redDays++
					}
					continue
				}
				perShow[a.ShowID] = append(perShow[a.ShowID], fmt.Sprintf("%s: %s", a.Role, a.Performer))
			}
			if len(perShow) > 0 {
				fmt.Printf("Assignments for %d show(s), %d RED day(s) granted\n", len(perShow), redDays)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Generate without saving to the database")
	cmd.Flags().Int64("seed", 0, "Seed the random source for reproducible output")

	return cmd
}
