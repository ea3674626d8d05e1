package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fittrack/internal/hydration"
	"fittrack/internal/render"
)

// hydrateCmd returns the "hydrate" command, a direct wrapper around the
// hydration planner.
func hydrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hydrate",
		Short: "Plan session hydration",
		Long: `Compute fluid and electrolyte targets for a training session.

Duration, intensity (RPE 6 to 10), and ambient temperature are required.
Pass --sweat-rate with a measured rate (pounds lost per hour) to override
the default estimate.`,
		Example: `  fittrack hydrate --duration 75 --rpe 8 --temp 85
  fittrack hydrate --duration 45 --rpe 7 --temp 68 --sweat-rate 2.1 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := hydration.Input{}
			in.DurationMinutes, _ = cmd.Flags().GetFloat64("duration")
			rpe, _ := cmd.Flags().GetInt("rpe")
			in.Intensity = hydration.RPE(rpe)
			in.TemperatureF, _ = cmd.Flags().GetFloat64("temp")

			if cmd.Flags().Changed("sweat-rate") {
				rate, _ := cmd.Flags().GetFloat64("sweat-rate")
				in.SweatRateLbPerHr = &rate
			}

			plan, err := hydration.Compute(in)
			if err != nil {
				return err
			}

			if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
				out, err := render.JSON(plan)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(render.PlanMarkdown(in, plan)))
			return nil
		},
	}

	cmd.Flags().Float64("duration", 0, "session length in minutes")
	cmd.Flags().Int("rpe", 0, "session intensity on the 6 to 10 RPE scale")
	cmd.Flags().Float64("temp", 0, "ambient temperature in Fahrenheit")
	cmd.Flags().Float64("sweat-rate", 0, "measured sweat rate in lb per hour")
	cmd.Flags().Bool("json", false, "emit the plan as JSON")
	cmd.MarkFlagRequired("duration")
	cmd.MarkFlagRequired("rpe")
	cmd.MarkFlagRequired("temp")

	return cmd
}
