package engine

import (
	"fmt"
	"time"

	"school-trivia/internal/domain"
)

// Variant selects the game rules.
type Variant string

const (
	VariantHeadToHead Variant = "head-to-head"
	VariantGroup      Variant = "group"
	VariantSolo       Variant = "solo"
)

// DefaultQuickThreshold is the head-to-head quick answer limit.
const DefaultQuickThreshold = 10 * time.Second

// Rules bundles everything that differs between variants.
type Rules struct {
	Variant         Variant
	MinParticipants int
	MaxParticipants int // 0 means unbounded
	RoundBased      bool
	Thresholds      Thresholds
	ResultType      domain.ResultType
	NewTurns        func() TurnStrategy
	Scoring         ScoringPolicy
}

// RulesFor returns the rules of a variant. quickThreshold only affects head-to-head;
// zero selects DefaultQuickThreshold.
func RulesFor(v Variant, quickThreshold time.Duration) (Rules, error) {
	if quickThreshold <= 0 {
		quickThreshold = DefaultQuickThreshold
	}
	switch v {
	case VariantHeadToHead:
		return Rules{
			Variant:         v,
			MinParticipants: 2,
			MaxParticipants: 2,
			RoundBased:      true,
			Thresholds:      Thresholds{Warning: 5},
			ResultType:      domain.ResultGroup,
			NewTurns:        func() TurnStrategy { return NewAlternating() },
			Scoring:         QuickBonus{Base: 1, Bonus: 2, Threshold: quickThreshold},
		}, nil
	case VariantGroup:
		return Rules{
			Variant:         v,
			MinParticipants: 1,
			Thresholds:      Thresholds{Warning: 10, Danger: 5},
			ResultType:      domain.ResultGroup,
			NewTurns:        func() TurnStrategy { return NewRoundRobin() },
			Scoring:         Flat{Points: 10},
		}, nil
	case VariantSolo:
		return Rules{
			Variant:         v,
			MinParticipants: 1,
			MaxParticipants: 1,
			Thresholds:      Thresholds{Warning: 10, Danger: 5},
			ResultType:      domain.ResultIndividual,
			NewTurns:        func() TurnStrategy { return NewRoundRobin() },
			Scoring:         Flat{Points: 1},
		}, nil
	}
	return Rules{}, domain.InvalidConfig("unknown variant %q", v)
}

func (r Rules) checkParticipants(n int) error {
	if n < 1 || n < r.MinParticipants {
		return domain.InvalidConfig("%s needs at least %d participants, got %d", r.Variant, max(1, r.MinParticipants), n)
	}
	if r.MaxParticipants > 0 && n > r.MaxParticipants {
		return domain.InvalidConfig("%s allows at most %d participants, got %d", r.Variant, r.MaxParticipants, n)
	}
	return nil
}

// ParseVariant validates a variant name coming from config or the wire.
func ParseVariant(raw string) (Variant, error) {
	switch v := Variant(raw); v {
	case VariantHeadToHead, VariantGroup, VariantSolo:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown variant %q", domain.ErrInvalidConfiguration, raw)
}
