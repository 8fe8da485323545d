package engine

// TurnStrategy decides which participant answers each question.
type TurnStrategy interface {
	// StartRound prepares a round of questionCount questions.
	StartRound(participants, questionCount int) error
	// Current returns the participant index on turn for questionIndex.
	Current(questionIndex int) (int, error)
	// Answered is called once after every scored question.
	Answered()
}

// Alternating hands the turn to the next participant after every answer,
// independent of question indices and rounds.
type Alternating struct {
	participants int
	current      int
}

func NewAlternating() *Alternating {
	return &Alternating{}
}

func (a *Alternating) StartRound(participants, _ int) error {
	a.participants = participants
	if a.current >= participants {
		a.current = 0
	}
	return nil
}

func (a *Alternating) Current(int) (int, error) {
	return a.current, nil
}

func (a *Alternating) Answered() {
	if a.participants == 0 {
		return
	}
	a.current = (a.current + 1) % a.participants
}

// RoundRobin resolves turns from an AssignmentPlan built per round.
type RoundRobin struct {
	plan AssignmentPlan
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

func (r *RoundRobin) StartRound(participants, questionCount int) error {
	plan, err := Plan(participants, questionCount)
	if err != nil {
		return err
	}
	r.plan = plan
	return nil
}

func (r *RoundRobin) Current(questionIndex int) (int, error) {
	return r.plan.ParticipantOwning(questionIndex)
}

func (r *RoundRobin) Answered() {}
