package combat

// ActionCost is the action-economy slot an activation spends
type ActionCost string

const (
	CostNone        ActionCost = ""
	CostFree        ActionCost = "free"
	CostAction      ActionCost = "action"
	CostBonusAction ActionCost = "bonus_action"
	CostReaction    ActionCost = "reaction"
)

// CombatState is the per-turn state of an entity in an encounter
type CombatState struct {
	Initiative           int  `json:"initiative"`
	TurnOrder            int  `json:"turn_order"`
	ActionAvailable      bool `json:"action_available"`
	BonusActionAvailable bool `json:"bonus_action_available"`
	ReactionAvailable    bool `json:"reaction_available"`
	MovementRemaining    int  `json:"movement_remaining"`
}

// NewCombatState starts with a full action economy
func NewCombatState(speed int) CombatState {
	s := CombatState{}
	s.Reset(speed)
	return s
}

// Reset restores every slot for a new turn. Initiative and turn order survive.
func (s *CombatState) Reset(speed int) {
	s.ActionAvailable = true
	s.BonusActionAvailable = true
	s.ReactionAvailable = true
	s.MovementRemaining = speed
}

// CanSpend reports whether the slot for cost is free
func (s CombatState) CanSpend(cost ActionCost) bool {
	switch cost {
	case CostAction:
		return s.ActionAvailable
	case CostBonusAction:
		return s.BonusActionAvailable
	case CostReaction:
		return s.ReactionAvailable
	default:
		return true
	}
}

// Spend consumes the slot for cost; false if it was already used
func (s *CombatState) Spend(cost ActionCost) bool {
	if !s.CanSpend(cost) {
		return false
	}
	switch cost {
	case CostAction:
		s.ActionAvailable = false
	case CostBonusAction:
		s.BonusActionAvailable = false
	case CostReaction:
		s.ReactionAvailable = false
	}
	return true
}

// Restore gives a slot back (action surge)
func (s *CombatState) Restore(cost ActionCost) {
	switch cost {
	case CostAction:
		s.ActionAvailable = true
	case CostBonusAction:
		s.BonusActionAvailable = true
	case CostReaction:
		s.ReactionAvailable = true
	}
}
