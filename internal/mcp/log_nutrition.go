package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/logging"
	"fittrack/internal/nutrition"
	"fittrack/internal/render"
)

// LogNutritionArgs are the arguments for the log_nutrition tool.
type LogNutritionArgs struct {
	MealTime        string   `json:"meal_time" jsonschema:"required,description=Meal time in 24-hour HH:MM format such as 21:30"`
	MealDescription string   `json:"meal_description" jsonschema:"required,description=Brief meal description (max 500 characters)"`
	ProteinG        *float64 `json:"protein_g" jsonschema:"description=Protein in grams (0-300)"`
	CarbsG          *float64 `json:"carbs_g" jsonschema:"description=Carbs in grams (0-500)"`
	FatG            *float64 `json:"fat_g" jsonschema:"description=Fat in grams (0-200)"`
	Calories        *int     `json:"calories" jsonschema:"description=Total calories (0-5000)"`
	ResponseFormat  string   `json:"response_format" jsonschema:"description=Output format: 'markdown' (default) or 'json'"`
}

// NutritionTool logs a meal and applies the late-meal guardrail.
type NutritionTool struct {
	logger *logging.Logger
}

func NewNutritionTool(logger *logging.Logger) *NutritionTool {
	return &NutritionTool{logger: logger}
}

func (t *NutritionTool) Definition() mcp.Tool {
	return mcp.NewTool("log_nutrition",
		mcp.WithDescription(`Log a meal with the automatic late-meal guardrail.

Records meal timing (24-hour HH:MM) and optional macros (protein 0-300 g,
carbs 0-500 g, fat 0-200 g, calories 0-5000). Meals between 21:00 and
05:59 get a warning with portion and timing advice; the meal is accepted
either way, since the guardrail informs rather than blocks. Nothing is
persisted: the entry ID only acknowledges the evaluation.`),
		mcp.WithInputSchema[LogNutritionArgs](),
		mcp.WithTitleAnnotation("Log Meal with Late-Meal Guardrails"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (t *NutritionTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args LogNutritionArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	format, err := parseResponseFormat(args.ResponseFormat)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meal := nutrition.Meal{
		Time:        args.MealTime,
		Description: args.MealDescription,
		ProteinG:    args.ProteinG,
		CarbsG:      args.CarbsG,
		FatG:        args.FatG,
		Calories:    args.Calories,
	}

	assessment, err := nutrition.Evaluate(meal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.logger.Info("Meal logged",
		"mealTime", meal.Time,
		"lateWarning", len(assessment.Warnings) > 0,
		"entryID", assessment.EntryID,
	)

	if format == formatJSON {
		payload := struct {
			Status string         `json:"status"`
			Meal   nutrition.Meal `json:"meal"`
			nutrition.Assessment
		}{Status: "logged", Meal: meal, Assessment: assessment}
		return jsonResult(payload)
	}
	return textResult(render.AssessmentMarkdown(meal, assessment)), nil
}
