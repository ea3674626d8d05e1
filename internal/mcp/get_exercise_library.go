package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/render"
)

// GetExerciseLibraryArgs are the arguments for the get_exercise_library tool.
type GetExerciseLibraryArgs struct {
	Category       string `json:"category" jsonschema:"description=Filter by category: pressing; pulling; lower_body_standing; serratus_lower_trap_focus; core_standing"`
	Search         string `json:"search" jsonschema:"description=Case-insensitive substring match on exercise names; aliases; and notes"`
	ResponseFormat string `json:"response_format" jsonschema:"description=Output format: 'markdown' (default) or 'json'"`
}

// LibraryTool serves the built-in AC-joint safe exercise catalog.
type LibraryTool struct {
	catalog *library.Catalog
	logger  *logging.Logger
}

func NewLibraryTool(catalog *library.Catalog, logger *logging.Logger) *LibraryTool {
	return &LibraryTool{catalog: catalog, logger: logger}
}

func (t *LibraryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_exercise_library",
		mcp.WithDescription(`Browse the AC-joint safe exercise library.

Every exercise carries a safety tier: "safe" exercises avoid loaded
end-range shoulder positions entirely, "caution" exercises need setup
notes respected, and "avoid" entries document movements that aggravate
AC joint arthritis along with substitutions. Filter by category, search
across names, aliases, and notes, or omit both to list the whole
catalog. Category and search combine when both are given.`),
		mcp.WithInputSchema[GetExerciseLibraryArgs](),
		mcp.WithTitleAnnotation("Get AC-Joint Safe Exercise Library"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (t *LibraryTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GetExerciseLibraryArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	format, err := parseResponseFormat(args.ResponseFormat)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	exercises, err := t.filter(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.logger.Debug("Exercise library queried",
		"category", args.Category,
		"search", args.Search,
		"matches", len(exercises),
	)

	if format == formatJSON {
		payload := struct {
			Exercises []library.Exercise `json:"exercises"`
			Count     int                `json:"count"`
		}{Exercises: exercises, Count: len(exercises)}
		return jsonResult(payload)
	}
	return textResult(render.LibraryMarkdown(exercises)), nil
}

// filter applies the search and category arguments in combination.
// Search runs first against the full catalog, then a category filter
// narrows the survivors. An unknown category is an input error.
func (t *LibraryTool) filter(args GetExerciseLibraryArgs) ([]library.Exercise, error) {
	var category library.Category
	haveCategory := args.Category != ""
	if haveCategory {
		parsed, err := library.ParseCategory(args.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	if args.Search != "" {
		matches := t.catalog.Search(args.Search)
		if !haveCategory {
			return matches, nil
		}
		filtered := make([]library.Exercise, 0, len(matches))
		for _, ex := range matches {
			if ex.Category == category {
				filtered = append(filtered, ex)
			}
		}
		return filtered, nil
	}

	if haveCategory {
		return t.catalog.ByCategory(category), nil
	}
	return t.catalog.All(), nil
}
