package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"gopkg.in/yaml.v3"
)

// actionEntry is the YAML shape of one action definition.
type actionEntry struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Crime           bool   `yaml:"crime"`
	Mode            string `yaml:"mode"`
	EnergyCost      int    `yaml:"energy_cost"`
	Difficulty      int    `yaml:"difficulty"`
	BaseGold        int64  `yaml:"base_gold"`
	BaseXP          int64  `yaml:"base_xp"`
	RelevantSuit    string `yaml:"relevant_suit"`
	RequiredSkill   int    `yaml:"required_skill"`
	CooldownSeconds int    `yaml:"cooldown_seconds"`
}

// jobEntry is the YAML shape of one job definition.
type jobEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Mode         string `yaml:"mode"`
	EnergyCost   int    `yaml:"energy_cost"`
	GoldMin      int64  `yaml:"gold_min"`
	GoldMax      int64  `yaml:"gold_max"`
	BaseXP       int64  `yaml:"base_xp"`
	RelevantSuit string `yaml:"relevant_suit"`
	Curve        string `yaml:"curve"`
}

type actionsFile struct {
	Actions []actionEntry `yaml:"actions"`
}

type jobsFile struct {
	Jobs []jobEntry `yaml:"jobs"`
}

// Catalog is the read-only action/job lookup, loaded once from YAML.
type Catalog struct {
	actions map[string]domain.ActionDef
	jobs    map[string]domain.JobDef
}

// Load reads actions.yaml and jobs.yaml from dir and validates every entry.
func Load(dir string) (*Catalog, error) {
	var af actionsFile
	if err := readYAML(filepath.Join(dir, "actions.yaml"), &af); err != nil {
		return nil, err
	}
	var jf jobsFile
	if err := readYAML(filepath.Join(dir, "jobs.yaml"), &jf); err != nil {
		return nil, err
	}

	c := &Catalog{
		actions: make(map[string]domain.ActionDef, len(af.Actions)),
		jobs:    make(map[string]domain.JobDef, len(jf.Jobs)),
	}

	for _, e := range af.Actions {
		def, err := e.toDef()
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", e.ID, err)
		}
		if _, dup := c.actions[def.ID]; dup {
			return nil, fmt.Errorf("duplicate action id %q", def.ID)
		}
		c.actions[def.ID] = def
	}

	for _, e := range jf.Jobs {
		def, err := e.toDef()
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", e.ID, err)
		}
		if _, dup := c.jobs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate job id %q", def.ID)
		}
		c.jobs[def.ID] = def
	}

	return c, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (e actionEntry) toDef() (domain.ActionDef, error) {
	mode, err := parseMode(e.Mode)
	if err != nil {
		return domain.ActionDef{}, err
	}
	if err := validateCommon(e.ID, e.RelevantSuit, e.EnergyCost); err != nil {
		return domain.ActionDef{}, err
	}
	if e.Difficulty <= 0 {
		return domain.ActionDef{}, fmt.Errorf("difficulty must be positive, got %d", e.Difficulty)
	}
	return domain.ActionDef{
		ID:            e.ID,
		Name:          e.Name,
		Crime:         e.Crime,
		Mode:          mode,
		EnergyCost:    e.EnergyCost,
		Difficulty:    e.Difficulty,
		BaseGold:      e.BaseGold,
		BaseXP:        e.BaseXP,
		RelevantSuit:  e.RelevantSuit,
		RequiredSkill: e.RequiredSkill,
		Cooldown:      time.Duration(e.CooldownSeconds) * time.Second,
	}, nil
}

func (e jobEntry) toDef() (domain.JobDef, error) {
	mode, err := parseMode(e.Mode)
	if err != nil {
		return domain.JobDef{}, err
	}
	if err := validateCommon(e.ID, e.RelevantSuit, e.EnergyCost); err != nil {
		return domain.JobDef{}, err
	}
	if e.GoldMin < 0 || e.GoldMax < e.GoldMin {
		return domain.JobDef{}, fmt.Errorf("gold range [%d,%d] is invalid", e.GoldMin, e.GoldMax)
	}

	curve := domain.CurveScore
	switch e.Curve {
	case "", "score":
	case "ratio":
		curve = domain.CurveRatio
	default:
		return domain.JobDef{}, fmt.Errorf("unknown curve %q", e.Curve)
	}

	return domain.JobDef{
		ID:           e.ID,
		Name:         e.Name,
		Mode:         mode,
		EnergyCost:   e.EnergyCost,
		GoldMin:      e.GoldMin,
		GoldMax:      e.GoldMax,
		BaseXP:       e.BaseXP,
		RelevantSuit: e.RelevantSuit,
		Curve:        curve,
	}, nil
}

func parseMode(s string) (domain.Mode, error) {
	switch s {
	case "", "poker":
		return domain.ModePoker, nil
	case "press_your_luck":
		return domain.ModePressYourLuck, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

func validateCommon(id, suit string, energyCost int) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if !domain.ValidSuit(suit) {
		return fmt.Errorf("unknown relevant suit %q", suit)
	}
	if energyCost < 0 {
		return fmt.Errorf("energy cost must be >= 0, got %d", energyCost)
	}
	return nil
}

// Action implements ports.CatalogPort.
func (c *Catalog) Action(id string) (domain.ActionDef, error) {
	def, ok := c.actions[id]
	if !ok {
		return domain.ActionDef{}, fmt.Errorf("%w: %q", ports.ErrActionNotFound, id)
	}
	return def, nil
}

// Job implements ports.CatalogPort.
func (c *Catalog) Job(id string) (domain.JobDef, error) {
	def, ok := c.jobs[id]
	if !ok {
		return domain.JobDef{}, fmt.Errorf("%w: %q", ports.ErrJobNotFound, id)
	}
	return def, nil
}

var _ ports.CatalogPort = (*Catalog)(nil)
