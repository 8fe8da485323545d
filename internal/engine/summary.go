package engine

import (
	"math"
	"strings"

	"school-trivia/internal/domain"
)

// statsAccumulator collects per-answer statistics while a game runs.
type statsAccumulator struct {
	correct   int
	total     int
	quick     int
	totalTime float64
}

func (a *statsAccumulator) record(out domain.AnswerOutcome) {
	a.total++
	a.totalTime += out.ElapsedSeconds
	if out.Correct {
		a.correct++
	}
	if out.Quick {
		a.quick++
	}
}

func (a *statsAccumulator) stats(rounds []domain.Round, participants []domain.Participant) domain.GameStats {
	stats := domain.GameStats{
		CorrectAnswers: a.correct,
		TotalAnswers:   a.total,
		QuickAnswers:   a.quick,
	}
	if a.total > 0 {
		stats.AverageTimeSeconds = math.Round(a.totalTime/float64(a.total)*10) / 10
	}

	named := make([]domain.RoundName, 0, len(rounds))
	for _, r := range rounds {
		if r.Name != "" {
			named = append(named, r.Name)
		}
	}
	if len(named) == 0 {
		return stats
	}

	stats.RoundScores = make(map[string]int, len(named))
	for _, name := range named {
		stats.RoundScores[string(name)] = 0
		for _, p := range participants {
			stats.RoundScores[string(name)] += p.RoundScores[string(name)]
		}
	}
	stats.BestRound = named[0]
	for _, name := range named[1:] {
		if stats.RoundScores[string(name)] > stats.RoundScores[string(stats.BestRound)] {
			stats.BestRound = name
		}
	}
	return stats
}

// buildSummary ranks the final participants and names the winner. On a
// two-way draw both names are joined.
func buildSummary(standings []domain.Standing, stats domain.GameStats) domain.Summary {
	summary := domain.Summary{Standings: standings, Stats: stats}
	if len(standings) == 0 {
		return summary
	}

	top := standings[0]
	summary.Score = top.Participant.Score
	summary.Winner = top.Participant.Name
	if len(standings) == 2 && top.Position == 0 {
		summary.Draw = true
		summary.Winner = strings.Join([]string{standings[0].Participant.Name, standings[1].Participant.Name}, " & ")
	}
	return summary
}

// Percentage returns score as a share of the best possible score over answered questions.
func Percentage(score, answered, maxPoints int) int {
	if answered <= 0 || maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(answered*maxPoints)))
}
