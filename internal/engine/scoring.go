package engine

import "time"

// ScoringPolicy converts an answer into points. Points are never negative.
type ScoringPolicy interface {
	Score(correct bool, elapsed time.Duration) (points int, quick bool)
	// MaxPoints is the best possible award for one question.
	MaxPoints() int
}

// QuickBonus awards Base for a correct answer, or Bonus when it arrived
// strictly before Threshold.
type QuickBonus struct {
	Base      int
	Bonus     int
	Threshold time.Duration
}

func (q QuickBonus) Score(correct bool, elapsed time.Duration) (int, bool) {
	if !correct {
		return 0, false
	}
	if elapsed < q.Threshold {
		return q.Bonus, true
	}
	return q.Base, false
}

func (q QuickBonus) MaxPoints() int {
	if q.Bonus > q.Base {
		return q.Bonus
	}
	return q.Base
}

// Flat awards the same points for every correct answer.
type Flat struct {
	Points int
}

func (f Flat) Score(correct bool, _ time.Duration) (int, bool) {
	if !correct {
		return 0, false
	}
	return f.Points, false
}

func (f Flat) MaxPoints() int { return f.Points }
