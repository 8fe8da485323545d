package engine

import (
	"fmt"

	"school-trivia/internal/domain"
)

// AssignmentPlan maps every question index to the participant that answers it.
// It is built once per round and never modified.
type AssignmentPlan struct {
	byParticipant [][]int
	owner         []int
}

// Plan assigns question i to participant i mod participantCount.
func Plan(participantCount, questionCount int) (AssignmentPlan, error) {
	if participantCount < 1 {
		return AssignmentPlan{}, domain.InvalidConfig("plan needs at least one participant, got %d", participantCount)
	}
	if questionCount < 0 {
		return AssignmentPlan{}, domain.InvalidConfig("negative question count %d", questionCount)
	}

	plan := AssignmentPlan{
		byParticipant: make([][]int, participantCount),
		owner:         make([]int, questionCount),
	}
	for i := 0; i < questionCount; i++ {
		p := i % participantCount
		plan.byParticipant[p] = append(plan.byParticipant[p], i)
		plan.owner[i] = p
	}
	return plan, nil
}

// ParticipantOwning returns the participant assigned to questionIndex.
func (p AssignmentPlan) ParticipantOwning(questionIndex int) (int, error) {
	if questionIndex < 0 || questionIndex >= len(p.owner) {
		return 0, fmt.Errorf("%w: %d", domain.ErrNotFound, questionIndex)
	}
	return p.owner[questionIndex], nil
}

// QuestionsFor returns the ascending question indices owned by participant.
func (p AssignmentPlan) QuestionsFor(participant int) []int {
	if participant < 0 || participant >= len(p.byParticipant) {
		return nil
	}
	return append([]int(nil), p.byParticipant[participant]...)
}

// Participants returns the participant count the plan was built for.
func (p AssignmentPlan) Participants() int { return len(p.byParticipant) }

// Questions returns the question count the plan covers.
func (p AssignmentPlan) Questions() int { return len(p.owner) }
