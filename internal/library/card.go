package library

import (
	"bytes"
	"fmt"
	"strings"

	"fittrack/pkg/fileops"

	"github.com/adrg/frontmatter"
)

// Limits applied to card files. External sources are user-maintained
// directories, so a malformed or oversized card must fail with a message
// naming the file rather than poisoning the catalog.
const (
	MaxCardSize     = 64 * 1024
	maxCardNameLen  = 100
	maxCardNotesLen = 2000
)

// cardFrontmatter is the YAML header of an exercise card.
type cardFrontmatter struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Tier     string   `yaml:"tier"`
	Aliases  []string `yaml:"aliases,omitempty"`
}

// ParseCard parses one exercise card: YAML frontmatter with the structured
// attributes, markdown body with the free-text guidance notes. The path is
// only used for error messages.
func ParseCard(path string, content []byte) (Exercise, error) {
	if len(content) > MaxCardSize {
		return Exercise{}, fmt.Errorf("card %s: exceeds %d byte limit", path, MaxCardSize)
	}

	var matter cardFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return Exercise{}, fmt.Errorf("card %s: no valid frontmatter: %w", path, err)
	}

	if strings.TrimSpace(matter.Name) == "" {
		return Exercise{}, fmt.Errorf("card %s: missing required 'name' field", path)
	}
	if len(matter.Name) > maxCardNameLen {
		return Exercise{}, fmt.Errorf("card %s: name too long (max %d characters)", path, maxCardNameLen)
	}
	if err := fileops.ValidateContent(matter.Name); err != nil {
		return Exercise{}, fmt.Errorf("card %s: invalid name: %w", path, err)
	}

	category, err := ParseCategory(matter.Category)
	if err != nil {
		return Exercise{}, fmt.Errorf("card %s: %w", path, err)
	}

	tier, err := ParseTier(matter.Tier)
	if err != nil {
		return Exercise{}, fmt.Errorf("card %s: %w", path, err)
	}

	aliases := make([]string, 0, len(matter.Aliases))
	for _, alias := range matter.Aliases {
		trimmed := strings.TrimSpace(alias)
		if trimmed == "" {
			return Exercise{}, fmt.Errorf("card %s: empty alias entry", path)
		}
		if len(trimmed) > maxCardNameLen {
			return Exercise{}, fmt.Errorf("card %s: alias %q too long (max %d characters)", path, trimmed, maxCardNameLen)
		}
		if err := fileops.ValidateContent(trimmed); err != nil {
			return Exercise{}, fmt.Errorf("card %s: invalid alias %q: %w", path, trimmed, err)
		}
		aliases = append(aliases, trimmed)
	}

	notes := strings.TrimSpace(string(body))
	if len(notes) > maxCardNotesLen {
		return Exercise{}, fmt.Errorf("card %s: notes too long (max %d characters)", path, maxCardNotesLen)
	}
	if err := fileops.ValidateContent(notes); err != nil {
		return Exercise{}, fmt.Errorf("card %s: invalid notes: %w", path, err)
	}

	return Exercise{
		Name:     strings.TrimSpace(matter.Name),
		Category: category,
		Tier:     tier,
		Aliases:  aliases,
		Notes:    notes,
	}, nil
}
