package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/logging"
	"fittrack/internal/render"
	"fittrack/internal/safety"
	"fittrack/internal/workout"
)

// LogWorkoutArgs are the arguments for the log_workout tool.
type LogWorkoutArgs struct {
	ExerciseName   string  `json:"exercise_name" jsonschema:"required,description=Name of the exercise such as 'Landmine Press' or 'Face Pulls'"`
	Sets           int     `json:"sets" jsonschema:"required,description=Number of sets completed (1-10)"`
	Reps           int     `json:"reps" jsonschema:"required,description=Reps per set (1-50)"`
	WeightLbs      float64 `json:"weight_lbs" jsonschema:"description=Weight used in pounds; omit or 0 for bodyweight work"`
	RPE            int     `json:"rpe" jsonschema:"required,description=Rate of Perceived Exertion on the 6-10 scale"`
	Notes          string  `json:"notes" jsonschema:"description=Optional notes such as form checks or pain (max 500 characters)"`
	ResponseFormat string  `json:"response_format" jsonschema:"description=Output format: 'markdown' (default) or 'json'"`
}

// WorkoutTool logs a workout entry with an AC joint safety assessment.
type WorkoutTool struct {
	classifier *safety.Classifier
	logger     *logging.Logger
}

func NewWorkoutTool(classifier *safety.Classifier, logger *logging.Logger) *WorkoutTool {
	return &WorkoutTool{classifier: classifier, logger: logger}
}

func (t *WorkoutTool) Definition() mcp.Tool {
	return mcp.NewTool("log_workout",
		mcp.WithDescription(`Log a workout session with AC joint safety validation and RPE tracking.

Records exercise details (sets 1-10, reps 1-50, weight in pounds, RPE on
the 6-10 scale) and checks the exercise against the AC joint safety tiers.
Movements classified avoid come back with safer alternatives from the same
movement category; caution movements surface their modification notes.
Nothing is persisted: the entry ID only acknowledges the assessment.`),
		mcp.WithInputSchema[LogWorkoutArgs](),
		mcp.WithTitleAnnotation("Log Workout Session"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (t *WorkoutTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args LogWorkoutArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	format, err := parseResponseFormat(args.ResponseFormat)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry := workout.Entry{
		Exercise: args.ExerciseName,
		Sets:     args.Sets,
		Reps:     args.Reps,
		WeightLb: args.WeightLbs,
		RPE:      args.RPE,
		Notes:    args.Notes,
	}

	ack, err := workout.Assess(entry, t.classifier)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.logger.Info("Workout logged",
		"exercise", ack.Entry.Exercise,
		"tier", ack.Safety.Tier,
		"entryID", ack.EntryID,
	)

	if format == formatJSON {
		payload := struct {
			Status string `json:"status"`
			workout.Ack
		}{Status: "logged", Ack: ack}
		return jsonResult(payload)
	}
	return textResult(render.WorkoutAckMarkdown(ack)), nil
}
