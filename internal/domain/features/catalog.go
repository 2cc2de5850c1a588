package features

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

var defaultCatalog = mustLoadEmbedded()

// Catalog holds the ability tables of every class
type Catalog struct {
	byClass map[string][]*Definition
}

// Default returns the catalog built from the embedded class tables
func Default() *Catalog {
	return defaultCatalog
}

// LoadEmbedded parses the embedded class tables
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedTables, "tables/*.yaml")
}

// LoadFromFS parses every class table matching pattern in fsys
func LoadFromFS(fsys fs.FS, pattern string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob class tables: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no class tables match %s", pattern)
	}
	sort.Strings(paths)

	catalog := &Catalog{byClass: make(map[string][]*Definition)}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read class table %s: %w", path, err)
		}
		if err := catalog.add(data); err != nil {
			return nil, fmt.Errorf("parse class table %s: %w", path, err)
		}
	}

	return catalog, nil
}

// Parse builds a catalog from one or more YAML class tables
func Parse(tables ...[]byte) (*Catalog, error) {
	catalog := &Catalog{byClass: make(map[string][]*Definition)}
	for i, data := range tables {
		if err := catalog.add(data); err != nil {
			return nil, fmt.Errorf("parse class table %d: %w", i, err)
		}
	}
	return catalog, nil
}

func mustLoadEmbedded() *Catalog {
	catalog, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return catalog
}

// ForClass returns the abilities a class has at level, in table order
func (c *Catalog) ForClass(class string, level int) []*Definition {
	var out []*Definition
	for _, def := range c.byClass[normalizeKey(class)] {
		if def.MinLevel <= level {
			out = append(out, def)
		}
	}
	return out
}

// HasClass reports whether a table exists for class
func (c *Catalog) HasClass(class string) bool {
	_, ok := c.byClass[normalizeKey(class)]
	return ok
}

// Classes lists the known classes, sorted
func (c *Catalog) Classes() []string {
	classes := make([]string, 0, len(c.byClass))
	for class := range c.byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func (c *Catalog) add(data []byte) error {
	var table classTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return err
	}

	class := normalizeKey(table.Class)
	if class == "" {
		return fmt.Errorf("class table is missing a class")
	}
	if _, exists := c.byClass[class]; exists {
		return fmt.Errorf("class %s defined twice", class)
	}

	seen := make(map[string]bool, len(table.Features))
	defs := make([]*Definition, 0, len(table.Features))
	for _, spec := range table.Features {
		def, err := spec.toDefinition(class)
		if err != nil {
			return fmt.Errorf("feature %q: %w", spec.ID, err)
		}
		if seen[def.ID] {
			return fmt.Errorf("feature %s defined twice", def.ID)
		}
		seen[def.ID] = true
		defs = append(defs, def)
	}

	c.byClass[class] = defs
	return nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// YAML shapes

type classTable struct {
	Class    string        `yaml:"class"`
	Features []featureSpec `yaml:"features"`
}

type featureSpec struct {
	ID                string           `yaml:"id"`
	Name              string           `yaml:"name"`
	Description       string           `yaml:"description"`
	Level             int              `yaml:"level"`
	Activation        string           `yaml:"activation"`
	ActionCost        string           `yaml:"action_cost"`
	Resource          *resourceSpec    `yaml:"resource"`
	Triggers          []triggerSpec    `yaml:"triggers"`
	Effects           []effectSpec     `yaml:"effects"`
	GrantsResistances []resistanceSpec `yaml:"grants_resistances"`
	GrantsConditions  []string         `yaml:"grants_conditions"`
}

type resourceSpec struct {
	Max     int    `yaml:"max"`
	ResetOn string `yaml:"reset_on"`
}

type triggerSpec struct {
	Event       string `yaml:"event"`
	Condition   string `yaml:"condition"`
	OncePerTurn bool   `yaml:"once_per_turn"`
}

type resistanceSpec struct {
	Match    string   `yaml:"match"`
	Effect   string   `yaml:"effect"`
	Value    int      `yaml:"value"`
	Requires []string `yaml:"requires"`
}

type effectSpec struct {
	Type         string              `yaml:"type"`
	Dice         string              `yaml:"dice"`
	DamageType   string              `yaml:"damage_type"`
	Target       string              `yaml:"target"`
	Condition    string              `yaml:"condition"`
	Duration     conditions.Duration `yaml:"duration"`
	Remove       bool                `yaml:"remove"`
	Stat         string              `yaml:"stat"`
	Value        int                 `yaml:"value"`
	On           string              `yaml:"on"`
	Disadvantage bool                `yaml:"disadvantage"`
	Count        int                 `yaml:"count"`
	Feature      string              `yaml:"feature"`
	Amount       int                 `yaml:"amount"`
	Handler      string              `yaml:"handler"`
}

func (s featureSpec) toDefinition(class string) (*Definition, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("missing id")
	}

	def := &Definition{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Class:       class,
		MinLevel:    max(s.Level, 1),
		Activation:  Activation(s.Activation),
		ActionCost:  combat.ActionCost(s.ActionCost),
	}
	if def.Name == "" {
		def.Name = s.ID
	}

	switch def.Activation {
	case ActivationPassive, ActivationActive, ActivationReaction, ActivationTriggered:
	case "":
		def.Activation = ActivationPassive
	default:
		return nil, fmt.Errorf("unknown activation %q", s.Activation)
	}

	switch def.ActionCost {
	case combat.CostNone, combat.CostFree, combat.CostAction, combat.CostBonusAction, combat.CostReaction:
	default:
		return nil, fmt.Errorf("unknown action cost %q", s.ActionCost)
	}

	if s.Resource != nil {
		reset := RestKind(s.Resource.ResetOn)
		if reset != ShortRest && reset != LongRest {
			return nil, fmt.Errorf("unknown reset trigger %q", s.Resource.ResetOn)
		}
		def.Resource = &ResourceSpec{Max: s.Resource.Max, ResetOn: reset}
	}

	for _, t := range s.Triggers {
		def.Triggers = append(def.Triggers, Trigger{Event: t.Event, Condition: t.Condition, OncePerTurn: t.OncePerTurn})
	}
	if def.Activation == ActivationTriggered && len(def.Triggers) == 0 {
		return nil, fmt.Errorf("triggered ability without triggers")
	}

	for _, e := range s.Effects {
		effect, err := e.toEffect()
		if err != nil {
			return nil, err
		}
		def.Effects = append(def.Effects, effect)
	}

	for _, r := range s.GrantsResistances {
		def.GrantsResistances = append(def.GrantsResistances, damage.Resistance{
			Match:              r.Match,
			Effect:             damage.Effect(r.Effect),
			Value:              r.Value,
			RequiredConditions: r.Requires,
			Label:              def.Name,
		})
	}
	for _, c := range s.GrantsConditions {
		def.GrantsConditions = append(def.GrantsConditions, conditions.ConditionType(c))
	}

	return def, nil
}

func (s effectSpec) toEffect() (Effect, error) {
	target := Target(s.Target)
	if target == "" {
		target = TargetSelf
	}
	if target != TargetSelf && target != TargetTargets {
		return nil, fmt.Errorf("unknown target %q", s.Target)
	}

	switch EffectKind(s.Type) {
	case KindDamage:
		var t damage.Type
		if s.DamageType != "" {
			parsed, ok := damage.ParseType(s.DamageType)
			if !ok {
				return nil, fmt.Errorf("unknown damage type %q", s.DamageType)
			}
			t = parsed
		}
		return DamageEffect{Dice: s.Dice, Type: t, Target: target}, nil
	case KindHealing:
		return HealingEffect{Dice: s.Dice, Target: target}, nil
	case KindCondition:
		if s.Condition == "" {
			return nil, fmt.Errorf("condition effect without condition")
		}
		return ConditionEffect{
			Condition: conditions.ConditionType(s.Condition),
			Duration:  s.Duration,
			Remove:    s.Remove,
			Target:    target,
		}, nil
	case KindModifier:
		return ModifierEffect{Stat: s.Stat, Value: s.Value, Duration: s.Duration}, nil
	case KindAdvantage:
		return AdvantageEffect{On: s.On, Disadvantage: s.Disadvantage}, nil
	case KindExtraAttack:
		return ExtraAttackEffect{Count: max(s.Count, 1)}, nil
	case KindResourceGain:
		return ResourceGainEffect{FeatureID: s.Feature, Amount: s.Amount}, nil
	case KindCustom:
		return CustomEffect{Handler: ParseCustomHandler(s.Handler), Key: s.Handler}, nil
	default:
		return nil, fmt.Errorf("unknown effect type %q", s.Type)
	}
}
