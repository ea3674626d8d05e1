package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/hydration"
	"fittrack/internal/logging"
	"fittrack/internal/render"
)

// CalculateHydrationArgs are the arguments for the calculate_hydration tool.
type CalculateHydrationArgs struct {
	DurationMinutes float64  `json:"duration_minutes" jsonschema:"required,description=Workout duration in minutes; must be positive"`
	Intensity       int      `json:"intensity" jsonschema:"required,description=Workout intensity as RPE on the 6-10 scale"`
	TemperatureF    *float64 `json:"temperature_f" jsonschema:"description=Ambient temperature in degrees Fahrenheit (default 72)"`
	SweatRateLbPerH *float64 `json:"sweat_rate_lb_per_hr" jsonschema:"description=Measured sweat rate in pounds per hour; overrides the heuristic estimate when provided"`
	ResponseFormat  string   `json:"response_format" jsonschema:"description=Output format: 'markdown' (default) or 'json'"`
}

// HydrationTool computes a fluid and electrolyte replacement plan.
type HydrationTool struct {
	logger *logging.Logger
}

func NewHydrationTool(logger *logging.Logger) *HydrationTool {
	return &HydrationTool{logger: logger}
}

func (t *HydrationTool) Definition() mcp.Tool {
	return mcp.NewTool("calculate_hydration",
		mcp.WithDescription(`Calculate hydration and electrolyte needs for a training session,
sized for heavy sweaters (hyperhidrosis-aware).

Estimates fluid loss from duration (minutes, positive), intensity (RPE
6-10), and ambient temperature; a measured sweat rate in lb/hr overrides
the heuristic estimate entirely. Returns replacement volumes, pre- and
intra-workout timing, and sodium targets. Pure calculation with no side
effects: identical inputs always return the identical plan.`),
		mcp.WithInputSchema[CalculateHydrationArgs](),
		mcp.WithTitleAnnotation("Calculate Hydration Needs (Hyperhidrosis-Aware)"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (t *HydrationTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args CalculateHydrationArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	format, err := parseResponseFormat(args.ResponseFormat)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := hydration.Input{
		DurationMinutes:  args.DurationMinutes,
		Intensity:        hydration.RPE(args.Intensity),
		TemperatureF:     hydration.DefaultTemperatureF,
		SweatRateLbPerHr: args.SweatRateLbPerH,
	}
	if args.TemperatureF != nil {
		in.TemperatureF = *args.TemperatureF
	}

	plan, err := hydration.Compute(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.logger.Debug("Hydration plan computed",
		"durationMinutes", in.DurationMinutes,
		"fluidOz", plan.FluidOz,
	)

	if format == formatJSON {
		return jsonResult(plan)
	}
	return textResult(render.PlanMarkdown(in, plan)), nil
}
