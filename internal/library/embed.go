package library

import "embed"

// builtinCards ships the default exercise library inside the binary.
// A builtin card that fails to parse is a programming error and aborts
// catalog loading; configured sources layer on top of these.
//
//go:embed data
var builtinCards embed.FS
