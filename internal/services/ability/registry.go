package ability

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
)

// characterFeatures is one character's feature list and its use counters.
// The definitions are shared with the catalog and never written.
type characterFeatures struct {
	class string
	level int
	defs  []*features.Definition
	uses  map[string]int
}

func newCharacterFeatures(class string, level int, defs []*features.Definition) *characterFeatures {
	cf := &characterFeatures{
		class: class,
		level: level,
		defs:  defs,
		uses:  make(map[string]int),
	}
	for _, def := range defs {
		if def.IsResourceGated() {
			cf.uses[def.ID] = def.Resource.Max
		}
	}
	return cf
}

func (cf *characterFeatures) find(featureID string) (*features.Definition, bool) {
	for _, def := range cf.defs {
		if def.ID == featureID {
			return def, true
		}
	}
	return nil, false
}

func (cf *characterFeatures) has(featureID string) bool {
	_, ok := cf.find(featureID)
	return ok
}

// remaining is -1 for features without a resource
func (cf *characterFeatures) remaining(def *features.Definition) int {
	if !def.IsResourceGated() {
		return -1
	}
	return cf.uses[def.ID]
}

// consume takes one use; false when the feature is exhausted
func (cf *characterFeatures) consume(def *features.Definition) bool {
	if !def.IsResourceGated() {
		return true
	}
	if cf.uses[def.ID] <= 0 {
		return false
	}
	cf.uses[def.ID]--
	return true
}

// restore gives back up to amount uses and returns how many were restored
func (cf *characterFeatures) restore(featureID string, amount int) int {
	def, ok := cf.find(featureID)
	if !ok || !def.IsResourceGated() || amount <= 0 {
		return 0
	}
	before := cf.uses[def.ID]
	cf.uses[def.ID] = min(before+amount, def.Resource.Max)
	return cf.uses[def.ID] - before
}

// rest refills what the rest kind resets. A long rest resets everything.
func (cf *characterFeatures) rest(kind features.RestKind) []string {
	var reset []string
	for _, def := range cf.defs {
		if !def.IsResourceGated() {
			continue
		}
		if kind == features.LongRest || def.Resource.ResetOn == kind {
			cf.uses[def.ID] = def.Resource.Max
			reset = append(reset, def.ID)
		}
	}
	return reset
}
