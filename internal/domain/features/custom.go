package features

import "strings"

// CustomHandler names a built-in effect that doesn't fit the generic variants
type CustomHandler int

const (
	CustomUnknown CustomHandler = iota
	CustomRage
	CustomSneakAttack
	CustomActionSurge
)

var customHandlerKeys = map[string]CustomHandler{
	"rage":         CustomRage,
	"sneak_attack": CustomSneakAttack,
	"action_surge": CustomActionSurge,
}

// ParseCustomHandler maps a key to a handler; unknown keys map to CustomUnknown
func ParseCustomHandler(key string) CustomHandler {
	return customHandlerKeys[strings.ToLower(strings.TrimSpace(key))]
}

func (h CustomHandler) String() string {
	switch h {
	case CustomRage:
		return "rage"
	case CustomSneakAttack:
		return "sneak_attack"
	case CustomActionSurge:
		return "action_surge"
	default:
		return "unknown"
	}
}
