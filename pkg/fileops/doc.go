// Package fileops provides the path, file, and content validation used
// whenever card data is read from directories the user controls.
//
// Exercise cards arrive from configured local directories and cloned
// repositories, so nothing in this package trusts its input: paths are
// checked for traversal and reserved system locations, file sizes are
// capped before reads, content is screened for control characters and
// script fragments, and symlinks are followed only when they resolve
// inside an allowed base directory.
//
// A typical card read chains the checks, failing before any byte of a
// suspect file reaches the parser:
//
//	if err := fileops.ValidatePath(cardPath); err != nil { ... }
//	if err := fileops.CheckFileSize(cardPath, 1024*1024); err != nil { ... }
//	content, _ := os.ReadFile(cardPath)
//	if err := fileops.ValidateContent(string(content)); err != nil { ... }
//
// Directory walks go through Scanner, which confines every open to an
// os.Root boundary and refuses symlinks that escape the scanned tree.
// ScanMatching is the one-call form the catalog loader uses to collect
// markdown cards.
package fileops
