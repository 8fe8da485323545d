package domain

import "time"

// Difficulty tags a question for the solo quiz tiers.
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyAll disables difficulty filtering.
	DifficultyAll Difficulty = "all"
)

// Valid reports whether d is one of the known tags (unset included).
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyUnset, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question models a multiple choice question. Difficulty, Category and Icon are optional.
type Question struct {
	ID           string     `json:"id" yaml:"id"`
	Text         string     `json:"text" yaml:"text"`
	Options      []string   `json:"options" yaml:"options"`
	CorrectIndex int        `json:"correctIndex" yaml:"correctIndex"`
	Difficulty   Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Category     string     `json:"category,omitempty" yaml:"category,omitempty"`
	Icon         string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order        int        `json:"order" yaml:"order"`
}

// Participant is a team or solo player scored independently.
type Participant struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	Score             int            `json:"score"`
	QuestionsAnswered int            `json:"questionsAnswered"`
	RoundScores       map[string]int `json:"roundScores,omitempty"`
}

// Clone returns a deep copy safe to hand out of the engine.
func (p Participant) Clone() Participant {
	out := p
	if p.RoundScores != nil {
		out.RoundScores = make(map[string]int, len(p.RoundScores))
		for k, v := range p.RoundScores {
			out.RoundScores[k] = v
		}
	}
	return out
}

// RoundName identifies a round of the head-to-head game.
type RoundName string

const (
	RoundCountries RoundName = "countries"
	RoundFootball  RoundName = "football"
	RoundPuzzles   RoundName = "puzzles"
	RoundSpeed     RoundName = "speed"
)

// HeadToHeadRounds is the fixed round order of the head-to-head game.
var HeadToHeadRounds = []RoundName{RoundCountries, RoundFootball, RoundPuzzles, RoundSpeed}

// Round is a named sub-sequence of questions. Single-round games use an empty name.
type Round struct {
	Name      RoundName
	Questions QuestionSet
}

// Phase is the session state machine position.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseScored         Phase = "scored"
	PhaseRoundOver      Phase = "round_over"
	PhaseComplete       Phase = "complete"
)

// TimerLevel classifies the remaining answer time for display.
type TimerLevel string

const (
	TimerNormal  TimerLevel = "normal"
	TimerWarning TimerLevel = "warning"
	TimerDanger  TimerLevel = "danger"
)

// QuestionView is a question as shown to players; CorrectIndex is -1 until scored.
type QuestionView struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Icon         string   `json:"icon,omitempty"`
}

// AnswerOutcome is the result of scoring one question.
type AnswerOutcome struct {
	QuestionIndex  int     `json:"questionIndex"`
	ParticipantID  int     `json:"participantId"`
	OptionIndex    int     `json:"optionIndex"`
	Correct        bool    `json:"correct"`
	TimedOut       bool    `json:"timedOut"`
	Quick          bool    `json:"quick"`
	Awarded        int     `json:"awarded"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// SessionState is the snapshot emitted after every transition.
type SessionState struct {
	GameID               string         `json:"gameId"`
	Variant              string         `json:"variant"`
	Phase                Phase          `json:"phase"`
	Round                RoundName      `json:"round,omitempty"`
	RoundIndex           int            `json:"roundIndex"`
	QuestionIndex        int            `json:"questionIndex"`
	QuestionCount        int            `json:"questionCount"`
	Question             *QuestionView  `json:"question,omitempty"`
	CurrentParticipantID int            `json:"currentParticipantId"`
	TimeRemaining        int            `json:"timeRemaining"`
	TimerLevel           TimerLevel     `json:"timerLevel"`
	InputLocked          bool           `json:"inputLocked"`
	Participants         []Participant  `json:"participants"`
	LastResult           *AnswerOutcome `json:"lastResult,omitempty"`
}

// Medal is the cosmetic classification of a final position.
type Medal string

const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// Standing is one ranked participant. Position 0 marks a two-way draw.
type Standing struct {
	Participant Participant `json:"participant"`
	Position    int         `json:"position"`
	Medal       Medal       `json:"medal,omitempty"`
}

// GameStats aggregates answer statistics over a whole game.
type GameStats struct {
	CorrectAnswers     int            `json:"correctAnswers"`
	TotalAnswers       int            `json:"totalAnswers"`
	QuickAnswers       int            `json:"quickAnswers"`
	AverageTimeSeconds float64        `json:"averageTime"`
	RoundScores        map[string]int `json:"rounds,omitempty"`
	BestRound          RoundName      `json:"bestRound,omitempty"`
}

// Summary is the final result of a completed game.
type Summary struct {
	GameID         string     `json:"gameId"`
	Variant        string     `json:"variant"`
	Winner         string     `json:"winner"`
	Score          int        `json:"score"`
	Draw           bool       `json:"draw"`
	TotalQuestions int        `json:"totalQuestions"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Standings      []Standing `json:"standings"`
	Stats          GameStats  `json:"stats"`
}

// LeaderboardEntry is a persisted cross-session high score.
type LeaderboardEntry struct {
	ID              string    `json:"id"`
	ParticipantName string    `json:"participantName"`
	Score           int       `json:"score"`
	Stats           GameStats `json:"stats"`
	Date            time.Time `json:"date"`
}

// ResultType distinguishes solo results from group results.
type ResultType string

const (
	ResultIndividual ResultType = "individual"
	ResultGroup      ResultType = "group"
)

// ResultRecord is the remote results row written for the admin backend.
type ResultRecord struct {
	ID              string     `json:"id"`
	GameID          string     `json:"gameId"`
	ParticipantName string     `json:"participantName"`
	Score           int        `json:"score"`
	TotalQuestions  int        `json:"totalQuestions"`
	Percentage      int        `json:"percentage"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	ResultType      ResultType `json:"resultType"`
	CreatedAt       time.Time  `json:"createdAt"`
}
