package rehab

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fittrack/internal/library"
	"fittrack/internal/logging"
)

//go:embed data
var protocolFS embed.FS

// Store serves immutable rehab protocols. All lookups return copies,
// so callers cannot mutate store state.
type Store struct {
	protocols map[Condition]Protocol
}

// NewStore loads and validates the embedded protocols. Every
// non-clinical exercise must resolve through the catalog; any
// validation failure aborts with an error naming the file and field.
func NewStore(catalog *library.Catalog, logger *logging.Logger) (*Store, error) {
	start := time.Now()

	entries, err := fs.ReadDir(protocolFS, "data")
	if err != nil {
		return nil, fmt.Errorf("reading embedded protocols: %w", err)
	}

	protocols := make(map[Condition]Protocol, len(allConditions))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := protocolFS.ReadFile(path.Join("data", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading protocol %s: %w", entry.Name(), err)
		}

		var p Protocol
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("parsing protocol %s: %w", entry.Name(), err)
		}
		if err := validateProtocol(entry.Name(), p, catalog); err != nil {
			return nil, err
		}
		if _, dup := protocols[p.Condition]; dup {
			return nil, fmt.Errorf("protocol %s: condition %q already defined", entry.Name(), p.Condition)
		}
		protocols[p.Condition] = p
	}

	for _, c := range allConditions {
		if _, ok := protocols[c]; !ok {
			return nil, fmt.Errorf("missing protocol for condition %q", c)
		}
	}

	if logger != nil {
		logger.Info("Rehab protocols loaded", "conditions", len(protocols))
		logger.Timing("protocol_load", start)
	}

	return &Store{protocols: protocols}, nil
}

func validateProtocol(file string, p Protocol, catalog *library.Catalog) error {
	if !isKnownCondition(p.Condition) {
		return fmt.Errorf("protocol %s: unknown condition %q, valid conditions: %s",
			file, p.Condition, strings.Join(conditionNames(), ", "))
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("protocol %s: title is empty", file)
	}
	if strings.TrimSpace(p.Overview) == "" {
		return fmt.Errorf("protocol %s: overview is empty", file)
	}
	if len(p.KeyPrinciples) == 0 {
		return fmt.Errorf("protocol %s: key_principles is empty", file)
	}
	if len(p.Phases) == 0 {
		return fmt.Errorf("protocol %s: no phases defined", file)
	}

	for i, phase := range p.Phases {
		if phase.Number != i+1 {
			return fmt.Errorf("protocol %s: phase numbers must be contiguous from 1, got %d at position %d",
				file, phase.Number, i+1)
		}
		if strings.TrimSpace(phase.Title) == "" {
			return fmt.Errorf("protocol %s: phase %d: title is empty", file, phase.Number)
		}
		if len(phase.Goals) == 0 {
			return fmt.Errorf("protocol %s: phase %d: no goals defined", file, phase.Number)
		}
		if len(phase.Exercises) == 0 {
			return fmt.Errorf("protocol %s: phase %d: no exercises defined", file, phase.Number)
		}
		if strings.TrimSpace(phase.ProgressionCriteria) == "" {
			return fmt.Errorf("protocol %s: phase %d: progression_criteria is empty", file, phase.Number)
		}
		for _, ex := range phase.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return fmt.Errorf("protocol %s: phase %d: exercise with empty name", file, phase.Number)
			}
			if ex.ProtocolOnly {
				continue
			}
			if _, ok := catalog.Find(ex.Name); !ok {
				return fmt.Errorf("protocol %s: phase %d: exercise %q is not in the exercise catalog (mark it protocol_only or fix the name)",
					file, phase.Number, ex.Name)
			}
		}
	}
	return nil
}

func isKnownCondition(c Condition) bool {
	for _, known := range allConditions {
		if c == known {
			return true
		}
	}
	return false
}

// Conditions returns the supported conditions in sorted order.
func (s *Store) Conditions() []Condition {
	return append([]Condition(nil), allConditions...)
}

// Protocol returns the full protocol for a condition.
func (s *Store) Protocol(c Condition) (Protocol, error) {
	p, ok := s.protocols[c]
	if !ok {
		return Protocol{}, &UnknownConditionError{Condition: c}
	}
	return cloneProtocol(p), nil
}

// Phase returns a single phase of a protocol, numbered from 1.
func (s *Store) Phase(c Condition, n int) (Phase, error) {
	p, ok := s.protocols[c]
	if !ok {
		return Phase{}, &UnknownConditionError{Condition: c}
	}
	if n < 1 || n > len(p.Phases) {
		return Phase{}, &PhaseOutOfRangeError{
			Condition: c,
			Requested: n,
			Min:       1,
			Max:       len(p.Phases),
		}
	}
	return clonePhase(p.Phases[n-1]), nil
}

func cloneProtocol(p Protocol) Protocol {
	out := p
	out.KeyPrinciples = append([]string(nil), p.KeyPrinciples...)
	out.Phases = make([]Phase, len(p.Phases))
	for i, phase := range p.Phases {
		out.Phases[i] = clonePhase(phase)
	}
	return out
}

func clonePhase(phase Phase) Phase {
	out := phase
	out.Goals = append([]string(nil), phase.Goals...)
	out.Exercises = append([]PhaseExercise(nil), phase.Exercises...)
	out.Restrictions = append([]string(nil), phase.Restrictions...)
	return out
}
