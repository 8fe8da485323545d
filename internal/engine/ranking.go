package engine

import (
	"sort"

	"school-trivia/internal/domain"
)

// Rank orders participants by score, keeping input order for ties, and numbers
// them from 1. Exactly two participants with equal scores are both reported at
// position 0 (a draw); larger fields never report draws.
func Rank(participants []domain.Participant) []domain.Standing {
	standings := make([]domain.Standing, len(participants))
	for i, p := range participants {
		standings[i] = domain.Standing{Participant: p.Clone()}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Participant.Score > standings[j].Participant.Score
	})

	if len(standings) == 2 && standings[0].Participant.Score == standings[1].Participant.Score {
		return standings
	}
	for i := range standings {
		standings[i].Position = i + 1
		standings[i].Medal = MedalFor(i + 1)
	}
	return standings
}

// MedalFor maps a final position to its medal.
func MedalFor(position int) domain.Medal {
	switch position {
	case 1:
		return domain.MedalGold
	case 2:
		return domain.MedalSilver
	case 3:
		return domain.MedalBronze
	}
	return domain.MedalNone
}
