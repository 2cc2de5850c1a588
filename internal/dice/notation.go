package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed "NdM+K" dice expression
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:\s*([+-])\s*(\d+))?$`)

// ParseNotation parses "NdM", "NdM+K", "NdM-K", "dM" and flat integers like "5".
// Anything richer (keep-highest, exploding dice) is rejected.
func ParseNotation(notation string) (Expression, error) {
	trimmed := strings.ToLower(strings.TrimSpace(notation))
	if trimmed == "" {
		return Expression{}, fmt.Errorf("empty dice expression")
	}

	if flat, err := strconv.Atoi(trimmed); err == nil {
		return Expression{Modifier: flat}, nil
	}

	matches := notationPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return Expression{}, fmt.Errorf("invalid dice expression %q", notation)
	}

	count := 1
	if matches[1] != "" {
		count, _ = strconv.Atoi(matches[1])
	}
	sides, _ := strconv.Atoi(matches[2])
	if count < 1 || sides < 1 {
		return Expression{}, fmt.Errorf("dice count and size must be positive in %q", notation)
	}

	expr := Expression{Count: count, Sides: sides}
	if matches[3] != "" {
		mod, _ := strconv.Atoi(matches[4])
		if matches[3] == "-" {
			mod = -mod
		}
		expr.Modifier = mod
	}

	return expr, nil
}

func (e Expression) String() string {
	switch {
	case e.Count == 0:
		return strconv.Itoa(e.Modifier)
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

// RollExpression parses and rolls an expression with the given roller
func RollExpression(roller Roller, notation string) (*RollResult, error) {
	expr, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}
	return roller.Roll(expr.Count, expr.Sides, expr.Modifier)
}

// RollDamage rolls a damage expression. Damage never goes negative.
func RollDamage(roller Roller, notation string) (*RollResult, error) {
	result, err := RollExpression(roller, notation)
	if err != nil {
		return nil, err
	}
	if result.Total < 0 {
		result.Total = 0
	}
	return result, nil
}
