// Package library holds the exercise card catalog and the sources it is
// assembled from.
//
// An exercise card is a markdown file with YAML frontmatter describing one
// exercise: its canonical name, movement category, AC-joint safety tier,
// and optional aliases, with free-form coaching notes in the body. A
// default set of cards is embedded in the binary; additional cards can be
// layered on top from configured sources.
//
// # Catalog Assembly
//
// LoadCatalog merges cards in a fixed order:
//
//  1. Embedded builtin cards (always present, compiled into the binary)
//  2. Each configured source, in config order
//
// A later card whose normalized name matches an earlier card's name or
// alias replaces that card, so a team card set can override builtin
// entries. Card parsing is strict: one malformed card fails the whole
// load with an error naming the file and field, rather than silently
// serving a partial catalog.
//
// # Sources
//
// Two source types implement the Source interface:
//
//   - DirSource: a plain local directory of card files
//   - GitSource: a Git repository cloned and cached under the XDG data
//     directory, refreshed on load, with PAT authentication for private
//     repositories via the OS credential store
//
// # Example
//
//	sources, _ := entriesToSources(cfg.Library.Sources)
//	catalog, err := library.LoadCatalog(sources, logger)
//	if err != nil {
//	    return err
//	}
//	if ex, ok := catalog.Find("landmine press"); ok {
//	    fmt.Println(ex.Tier)
//	}
package library
