package domain

import (
	"fmt"
	"strings"
)

// Condition is the graded physical condition of a card. Lower values are
// better, so Mint < NearMint < ... < Poor.
type Condition int

// Condition constants, best first.
const (
	ConditionMint Condition = iota
	ConditionNearMint
	ConditionSlightlyPlayed
	ConditionModeratelyPlayed
	ConditionPlayed
	ConditionHeavilyPlayed
	ConditionPoor
)

var conditionNames = [...]string{
	ConditionMint:             "Mint",
	ConditionNearMint:         "Near Mint",
	ConditionSlightlyPlayed:   "Slightly Played",
	ConditionModeratelyPlayed: "Moderately Played",
	ConditionPlayed:           "Played",
	ConditionHeavilyPlayed:    "Heavily Played",
	ConditionPoor:             "Poor",
}

// conditionMap maps lower-cased marketplace spellings to conditions.
var conditionMap = map[string]Condition{
	"mint":              ConditionMint,
	"near mint":         ConditionNearMint,
	"nearmint":          ConditionNearMint,
	"nm":                ConditionNearMint,
	"slightly played":   ConditionSlightlyPlayed,
	"slightlyplayed":    ConditionSlightlyPlayed,
	"sp":                ConditionSlightlyPlayed,
	"moderately played": ConditionModeratelyPlayed,
	"moderatelyplayed":  ConditionModeratelyPlayed,
	"mp":                ConditionModeratelyPlayed,
	"played":            ConditionPlayed,
	"heavily played":    ConditionHeavilyPlayed,
	"heavilyplayed":     ConditionHeavilyPlayed,
	"hp":                ConditionHeavilyPlayed,
	"poor":              ConditionPoor,
}

// ParseCondition maps a marketplace condition string to a Condition.
func ParseCondition(raw string) (Condition, error) {
	c, ok := conditionMap[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("unknown condition %q", raw)
	}
	return c, nil
}

// String returns the marketplace spelling of the condition.
func (c Condition) String() string {
	if c < 0 || int(c) >= len(conditionNames) {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return conditionNames[c]
}

// AtLeast reports whether c is as good as or better than minimum.
func (c Condition) AtLeast(minimum Condition) bool {
	return c <= minimum
}

// MarshalText implements encoding.TextMarshaler.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so conditions can be
// read from both JSON payloads and YAML config.
func (c *Condition) UnmarshalText(text []byte) error {
	parsed, err := ParseCondition(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
