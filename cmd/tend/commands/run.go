package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tend/internal/adapters/telemetry"
	"go.trai.ch/tend/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run the targets and every stale task they depend on",
		Long: "Run the targets and every stale task they depend on.\n" +
			"Without targets the taskfile's default task runs.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			trace, _ := cmd.Flags().GetString("trace")
			reportPath, _ := cmd.Flags().GetString("report")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				LoadOptions: c.loadOptions(),
				Jobs:        jobs,
				FailFast:    failFast,
				DryRun:      dryRun,
				Trace:       trace,
				ReportPath:  reportPath,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of tasks running at once (0: unbounded)")
	cmd.Flags().Bool("fail-fast", false, "Stop starting new tasks after the first failure")
	cmd.Flags().Bool("dry-run", false, "Report which tasks would run without running them")
	cmd.Flags().String("trace", telemetry.TracerNone, "Tracer: none, otel or progrock")
	cmd.Flags().String("report", "", "Write a JSON run report to this path")
	return cmd
}
