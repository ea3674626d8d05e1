package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fittrack/internal/nutrition"
	"fittrack/internal/render"
)

// mealCmd returns the top-level "meal" command.
func mealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Check meals against the late-eating guard",
	}
	cmd.AddCommand(mealCheckCmd())
	return cmd
}

func mealCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Assess a meal time",
		Long: `Assess a meal against the late-night eating window (21:00 to 05:59).

The meal is always accepted; late meals come back with warnings and
lighter-alternative suggestions. Macros are optional and echoed into the
logged entry.`,
		Example: `  fittrack meal check --time 22:30 --description "chicken and rice"
  fittrack meal check --time 18:00 --protein 40 --carbs 60 --fat 15 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meal := nutrition.Meal{}
			meal.Time, _ = cmd.Flags().GetString("time")
			meal.Description, _ = cmd.Flags().GetString("description")

			if cmd.Flags().Changed("protein") {
				v, _ := cmd.Flags().GetFloat64("protein")
				meal.ProteinG = &v
			}
			if cmd.Flags().Changed("carbs") {
				v, _ := cmd.Flags().GetFloat64("carbs")
				meal.CarbsG = &v
			}
			if cmd.Flags().Changed("fat") {
				v, _ := cmd.Flags().GetFloat64("fat")
				meal.FatG = &v
			}
			if cmd.Flags().Changed("calories") {
				v, _ := cmd.Flags().GetInt("calories")
				meal.Calories = &v
			}

			assessment, err := nutrition.Evaluate(meal)
			if err != nil {
				return err
			}

			if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
				out, err := render.JSON(assessment)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(render.AssessmentMarkdown(meal, assessment)))
			return nil
		},
	}

	cmd.Flags().String("time", "", "meal time as HH:MM (24 hour)")
	cmd.Flags().String("description", "", "what was eaten")
	cmd.Flags().Float64("protein", 0, "protein in grams")
	cmd.Flags().Float64("carbs", 0, "carbohydrates in grams")
	cmd.Flags().Float64("fat", 0, "fat in grams")
	cmd.Flags().Int("calories", 0, "total calories")
	cmd.Flags().Bool("json", false, "emit the assessment as JSON")
	cmd.MarkFlagRequired("time")

	return cmd
}
