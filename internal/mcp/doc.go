// Package mcp exposes the fittrack rules engine over the Model Context
// Protocol using mcp-go.
//
// The server registers five tools backed by the domain packages:
//
//   - log_workout: workout acknowledgment with an AC joint safety check
//   - calculate_hydration: fluid and electrolyte planning
//   - log_nutrition: meal logging with late-meal guardrails
//   - get_exercise_library: the AC-joint safe exercise catalog
//   - get_rehab_protocol: phased rehab protocols for six conditions
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go). Each
// tool lives in its own file as a struct holding its dependencies, with a
// Definition method producing the mcp.Tool and a Handle method implementing
// server.ToolHandlerFunc. Arguments bind through typed structs whose
// jsonschema tags generate the input schema, so schema-aware clients see
// the accepted ranges before calling.
//
// # Error handling
//
// Domain rejections (an out-of-range RPE, an unknown rehab condition, a
// malformed meal time) become tool results with the error flag set, never
// JSON-RPC protocol errors. The server installs recovery middleware so a
// panicking handler cannot kill the process. Responses are capped at
// render.MaxResponseChars with a truncation notice.
//
// # Usage
//
// The server is typically started as a subprocess by AI assistants that
// support MCP. Running the binary bare (or `fittrack serve`) reads JSON-RPC
// requests from stdin and writes responses to stdout until EOF or
// termination; logs go to stderr so the protocol stream stays clean.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
