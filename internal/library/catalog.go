package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fittrack/internal/logging"
	"fittrack/pkg/fileops"
)

// maxSourceScanDepth bounds recursion when scanning configured card
// directories. Card sets are flat or shallowly grouped; anything deeper is
// a misconfigured path.
const maxSourceScanDepth = 3

// Catalog is the merged, immutable exercise library. Built once at startup;
// all accessors are read-only and safe for concurrent use.
type Catalog struct {
	exercises []Exercise
	byKey     map[string]int
}

// LoadCatalog builds the catalog from the builtin cards plus the configured
// sources, in order. A later card whose normalized name matches an earlier
// card's name or alias replaces that card, so teams can override builtin
// entries. Any unparseable card fails the whole load.
func LoadCatalog(sources []Source, logger *logging.Logger) (*Catalog, error) {
	start := time.Now()

	merged := newMergeState()

	builtin, err := loadBuiltinCards()
	if err != nil {
		return nil, err
	}
	if err := merged.addBatch(builtin, "builtin"); err != nil {
		return nil, err
	}

	for _, source := range sources {
		dir, info, err := source.Prepare(logger)
		if err != nil {
			return nil, fmt.Errorf("preparing card source: %w", err)
		}
		if logger != nil {
			logger.Debug("Card source prepared", "dir", dir, "status", info.Message)
		}

		cards, err := loadCardDir(dir)
		if err != nil {
			return nil, err
		}
		if err := merged.addBatch(cards, dir); err != nil {
			return nil, err
		}
	}

	catalog, err := merged.finalize()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Exercise catalog loaded",
			"cards", len(catalog.exercises),
			"sources", 1+len(sources))
		logger.Timing("catalog_load", start)
	}

	return catalog, nil
}

// LoadBuiltinCatalog builds a catalog from the embedded cards only.
func LoadBuiltinCatalog(logger *logging.Logger) (*Catalog, error) {
	return LoadCatalog(nil, logger)
}

func loadBuiltinCards() ([]Exercise, error) {
	var cards []Exercise
	err := fs.WalkDir(builtinCards, "data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		content, err := builtinCards.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading builtin card %s: %w", path, err)
		}
		card, err := ParseCard(path, content)
		if err != nil {
			return err
		}
		cards = append(cards, card)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no builtin exercise cards embedded")
	}
	return cards, nil
}

// loadCardDir reads every .md card under dir. The scan stays inside dir
// (secure root) and ignores non-markdown files.
func loadCardDir(dir string) ([]Exercise, error) {
	files, err := fileops.ScanMatching(dir, func(name string) bool {
		return strings.HasSuffix(name, ".md")
	}, maxSourceScanDepth)
	if err != nil {
		return nil, fmt.Errorf("scanning card directory %s: %w", dir, err)
	}

	var cards []Exercise
	for _, file := range files {
		fullPath := filepath.Join(dir, file.Path)
		if err := fileops.CheckFileSize(fullPath, MaxCardSize); err != nil {
			return nil, fmt.Errorf("card %s: %w", fullPath, err)
		}
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, fmt.Errorf("reading card %s: %w", fullPath, err)
		}
		card, err := ParseCard(fullPath, content)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// mergeState accumulates cards across batches with override-by-name
// semantics. Within one batch a duplicate name is an authoring error.
type mergeState struct {
	order []string            // normalized canonical names, insertion order
	cards map[string]Exercise // normalized canonical name -> card
}

func newMergeState() *mergeState {
	return &mergeState{cards: make(map[string]Exercise)}
}

func (m *mergeState) addBatch(batch []Exercise, origin string) error {
	seen := make(map[string]string, len(batch))
	for _, card := range batch {
		key := NormalizeName(card.Name)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("duplicate card name %q in %s (also %q)", card.Name, origin, prev)
		}
		seen[key] = card.Name

		// Replace any earlier card this name shadows, whether it matched a
		// canonical name or an alias.
		if existingKey, ok := m.ownerOf(key); ok {
			delete(m.cards, existingKey)
			m.removeFromOrder(existingKey)
		}
		m.cards[key] = card
		m.order = append(m.order, key)
	}
	return nil
}

func (m *mergeState) ownerOf(key string) (string, bool) {
	if _, ok := m.cards[key]; ok {
		return key, true
	}
	for canonical, card := range m.cards {
		for _, alias := range card.Aliases {
			if NormalizeName(alias) == key {
				return canonical, true
			}
		}
	}
	return "", false
}

func (m *mergeState) removeFromOrder(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

func (m *mergeState) finalize() (*Catalog, error) {
	exercises := make([]Exercise, 0, len(m.order))
	for _, key := range m.order {
		exercises = append(exercises, m.cards[key])
	}
	sort.Slice(exercises, func(i, j int) bool {
		return NormalizeName(exercises[i].Name) < NormalizeName(exercises[j].Name)
	})

	byKey := make(map[string]int, len(exercises)*2)
	for i, ex := range exercises {
		key := NormalizeName(ex.Name)
		if _, exists := byKey[key]; exists {
			return nil, fmt.Errorf("catalog name collision on %q", ex.Name)
		}
		byKey[key] = i
	}
	for i, ex := range exercises {
		for _, alias := range ex.Aliases {
			key := NormalizeName(alias)
			if prev, exists := byKey[key]; exists {
				if prev != i {
					return nil, fmt.Errorf("alias %q of %q collides with %q",
						alias, ex.Name, exercises[prev].Name)
				}
				continue
			}
			byKey[key] = i
		}
	}

	return &Catalog{exercises: exercises, byKey: byKey}, nil
}

// All returns every exercise, sorted by normalized name.
func (c *Catalog) All() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Len reports the number of cards in the catalog.
func (c *Catalog) Len() int { return len(c.exercises) }

// ByCategory returns the exercises in one category, sorted by name.
func (c *Catalog) ByCategory(category Category) []Exercise {
	var out []Exercise
	for _, ex := range c.exercises {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out
}

// Find looks up an exercise by exact normalized match on canonical name or
// alias.
func (c *Catalog) Find(name string) (Exercise, bool) {
	idx, ok := c.byKey[NormalizeName(name)]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[idx], true
}

// Search returns exercises whose name, aliases, or notes contain the term,
// case-insensitively. An empty term matches everything.
func (c *Catalog) Search(term string) []Exercise {
	needle := NormalizeName(term)
	if needle == "" {
		return c.All()
	}

	var out []Exercise
	for _, ex := range c.exercises {
		if strings.Contains(NormalizeName(ex.Name), needle) {
			out = append(out, ex)
			continue
		}
		matched := false
		for _, alias := range ex.Aliases {
			if strings.Contains(NormalizeName(alias), needle) {
				matched = true
				break
			}
		}
		if !matched && strings.Contains(strings.ToLower(ex.Notes), needle) {
			matched = true
		}
		if matched {
			out = append(out, ex)
		}
	}
	return out
}

// Names returns the canonical exercise names plus aliases, the candidate
// set for approximate matching. Sorted for deterministic iteration.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byKey))
	for key := range c.byKey {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// CanonicalNames returns only the canonical names, sorted.
func (c *Catalog) CanonicalNames() []string {
	names := make([]string, 0, len(c.exercises))
	for _, ex := range c.exercises {
		names = append(names, ex.Name)
	}
	return names
}
