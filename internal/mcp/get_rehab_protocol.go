package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/logging"
	"fittrack/internal/rehab"
	"fittrack/internal/render"
)

// GetRehabProtocolArgs are the arguments for the get_rehab_protocol tool.
type GetRehabProtocolArgs struct {
	Condition      string `json:"condition" jsonschema:"required,description=Condition key: ac_joint_arthritis; bicep_tendonitis; cervical_spine_arthritis; post_ankle_surgery; post_meniscus_surgery; scapular_winging"`
	Phase          int    `json:"phase" jsonschema:"description=Phase number 1-4; omit for the whole protocol"`
	ResponseFormat string `json:"response_format" jsonschema:"description=Output format: 'markdown' (default) or 'json'"`
}

// RehabTool serves the built-in physical therapy protocols.
type RehabTool struct {
	store  *rehab.Store
	logger *logging.Logger
}

func NewRehabTool(store *rehab.Store, logger *logging.Logger) *RehabTool {
	return &RehabTool{store: store, logger: logger}
}

func (t *RehabTool) Definition() mcp.Tool {
	return mcp.NewTool("get_rehab_protocol",
		mcp.WithDescription(`Get a phased physical therapy protocol for a tracked condition.

Each protocol progresses through four phases with duration estimates,
exercise prescriptions (sets, reps, frequency), progression criteria,
and red flags that warrant backing off. Request a single phase with the
phase argument or omit it for the whole protocol. Conditions use
snake_case keys; close variants such as "AC joint arthritis" are
normalized. These are general templates, not medical advice.`),
		mcp.WithInputSchema[GetRehabProtocolArgs](),
		mcp.WithTitleAnnotation("Get Physical Therapy / Rehab Protocol"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (t *RehabTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GetRehabProtocolArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	format, err := parseResponseFormat(args.ResponseFormat)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	condition, err := rehab.ParseCondition(args.Condition)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	protocol, err := t.store.Protocol(condition)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.logger.Debug("Rehab protocol served",
		"condition", condition,
		"phase", args.Phase,
	)

	if args.Phase != 0 {
		phase, err := t.store.Phase(condition, args.Phase)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if format == formatJSON {
			return jsonResult(phase)
		}
		return textResult(render.PhaseMarkdown(protocol, phase)), nil
	}

	if format == formatJSON {
		return jsonResult(protocol)
	}
	return textResult(render.ProtocolMarkdown(protocol)), nil
}
