package engine

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"school-trivia/internal/domain"
)

// DefaultTimerSeconds is the answer window per question.
const DefaultTimerSeconds = 30

// Config holds per-game settings passed to Begin.
type Config struct {
	GameID  string
	Variant Variant
	// TimerSeconds is the countdown per question; zero selects DefaultTimerSeconds.
	TimerSeconds int
	// QuickThreshold overrides the head-to-head quick answer limit.
	QuickThreshold time.Duration
	// AutoAdvance moves to the next question PresentationDelay after scoring.
	// Without it the caller drives progression with Advance.
	AutoAdvance       bool
	PresentationDelay time.Duration
	// Difficulty is recorded in the summary; filtering happens before Begin.
	Difficulty domain.Difficulty
}

// Scheduler runs fn after d and returns a function that cancels it.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for absorbed runtime races.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock injects the time source used for answer timing.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTicker injects the countdown ticker.
func WithTicker(f TickerFactory) Option {
	return func(e *Engine) { e.newTicker = f }
}

// WithScheduler injects the presentation delay scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.schedule = s }
}

// Engine drives one game: question delivery, the answer timer, scoring, turn
// rotation and the final ranking. All state is guarded by mu; timer callbacks
// run under mu as well, so the input latch is checked and set atomically.
type Engine struct {
	log       *zap.Logger
	now       func() time.Time
	newTicker TickerFactory
	schedule  Scheduler
	timer     *Timer

	mu           sync.Mutex
	cfg          Config
	rules        Rules
	turns        TurnStrategy
	rounds       []domain.Round
	participants []*domain.Participant
	phase        domain.Phase
	roundIndex   int
	questionIdx  int
	current      int
	remaining    int
	inputLocked  bool
	shownAt      time.Time
	epoch        uint64
	lastResult   *domain.AnswerOutcome
	stats        statsAccumulator
	stopPending  func() bool
	summary      *domain.Summary
	subscribers  map[chan domain.SessionState]struct{}
}

// New returns an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:         zap.NewNop(),
		now:         time.Now,
		newTicker:   NewStdTicker,
		schedule:    afterFunc,
		phase:       domain.PhaseIdle,
		subscribers: make(map[chan domain.SessionState]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.timer = NewTimer(e.newTicker, e.dispatch)
	return e
}

func (e *Engine) dispatch(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// Begin validates the setup and starts a new game at the first question.
// Nothing changes when validation fails.
func (e *Engine) Begin(rounds []domain.Round, names []string, cfg Config) error {
	rules, err := RulesFor(cfg.Variant, cfg.QuickThreshold)
	if err != nil {
		return err
	}
	if err := rules.checkParticipants(len(names)); err != nil {
		return err
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return domain.InvalidConfig("participant %d has an empty name", i)
		}
	}
	if len(rounds) == 0 {
		return domain.InvalidConfig("no rounds configured")
	}
	total := 0
	for _, r := range rounds {
		total += r.Questions.Len()
	}
	if rules.RoundBased && total == 0 {
		return domain.InvalidConfig("round-based play needs questions")
	}
	if cfg.TimerSeconds <= 0 {
		cfg.TimerSeconds = DefaultTimerSeconds
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()
	e.cfg = cfg
	e.rules = rules
	e.turns = rules.NewTurns()
	e.rounds = append([]domain.Round(nil), rounds...)
	e.participants = make([]*domain.Participant, len(names))
	for i, name := range names {
		e.participants[i] = &domain.Participant{ID: i, Name: strings.TrimSpace(name)}
		if rules.RoundBased {
			e.participants[i].RoundScores = make(map[string]int, len(rounds))
		}
	}
	e.stats = statsAccumulator{}
	e.summary = nil
	e.lastResult = nil
	e.current = 0

	e.log.Info("game started",
		zap.String("game_id", cfg.GameID),
		zap.String("variant", string(cfg.Variant)),
		zap.Int("participants", len(names)),
		zap.Int("questions", total),
	)
	e.enterRoundLocked(0)
	return nil
}

// SubmitAnswer scores optionIndex for the participant on turn. -1 means no
// answer. Calls outside AwaitingAnswer or after the first answer are ignored.
func (e *Engine) SubmitAnswer(optionIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitLocked(optionIndex)
}

// Advance moves past a scored question to the next question, round or the end.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != domain.PhaseScored && e.phase != domain.PhaseRoundOver {
		e.log.Debug("advance ignored", zap.String("phase", string(e.phase)))
		return
	}
	e.advanceLocked()
}

// Skip passes the current question without scoring it.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != domain.PhaseAwaitingAnswer || e.inputLocked {
		e.log.Debug("skip ignored", zap.String("phase", string(e.phase)), zap.Bool("locked", e.inputLocked))
		return
	}
	e.inputLocked = true
	e.advanceLocked()
}

// Reset abandons the game and returns to Idle.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.haltLocked()
	e.participants = nil
	e.rounds = nil
	e.summary = nil
	e.lastResult = nil
	e.phase = domain.PhaseIdle
	e.broadcastLocked()
}

// State returns the current snapshot.
func (e *Engine) State() domain.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Summary returns the final summary once the game is complete.
func (e *Engine) Summary() (domain.Summary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary == nil {
		return domain.Summary{}, false
	}
	return *e.summary, true
}

// Rules returns the rules of the running game.
func (e *Engine) Rules() Rules {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rules
}

// Subscribe returns a channel receiving a snapshot after every transition.
// The caller must invoke the returned cancel function to avoid leaks.
func (e *Engine) Subscribe() (<-chan domain.SessionState, func()) {
	ch := make(chan domain.SessionState, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	// The buffer is empty, so this cannot block and no broadcast can overtake it.
	ch <- e.snapshotLocked()
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// haltLocked stops everything that could still act on the current question.
func (e *Engine) haltLocked() {
	e.epoch++
	e.timer.Cancel()
	if e.stopPending != nil {
		e.stopPending()
		e.stopPending = nil
	}
}

// enterRoundLocked starts the first non-empty round at or after idx.
func (e *Engine) enterRoundLocked(idx int) {
	for ; idx < len(e.rounds); idx++ {
		n := e.rounds[idx].Questions.Len()
		if n == 0 {
			continue
		}
		if err := e.turns.StartRound(len(e.participants), n); err != nil {
			e.log.Error("turn strategy rejected round", zap.Int("round", idx), zap.Error(err))
			continue
		}
		e.roundIndex = idx
		e.questionIdx = 0
		e.showQuestionLocked()
		return
	}
	e.completeLocked()
}

func (e *Engine) showQuestionLocked() {
	e.haltLocked()
	e.inputLocked = false
	e.lastResult = nil
	e.current = e.ownerLocked(e.questionIdx)
	e.remaining = e.cfg.TimerSeconds
	e.shownAt = e.now()
	e.phase = domain.PhaseAwaitingAnswer

	epoch := e.epoch
	e.timer.Start(e.cfg.TimerSeconds,
		func(remaining int) { e.onTickLocked(epoch, remaining) },
		func() { e.onExpireLocked(epoch) },
	)
	e.broadcastLocked()
}

// ownerLocked resolves the participant on turn, falling back to round-robin.
func (e *Engine) ownerLocked(questionIndex int) int {
	owner, err := e.turns.Current(questionIndex)
	if err != nil || owner < 0 || owner >= len(e.participants) {
		fallback := questionIndex % len(e.participants)
		e.log.Warn("turn lookup failed, using round-robin",
			zap.Int("question", questionIndex),
			zap.Int("participant", fallback),
			zap.Error(err),
		)
		return fallback
	}
	return owner
}

func (e *Engine) onTickLocked(epoch uint64, remaining int) {
	if epoch != e.epoch || e.phase != domain.PhaseAwaitingAnswer {
		e.log.Debug("stale timer tick", zap.Int("remaining", remaining))
		return
	}
	e.remaining = remaining
	e.broadcastLocked()
}

func (e *Engine) onExpireLocked(epoch uint64) {
	if epoch != e.epoch {
		e.log.Debug("stale timer expiry")
		return
	}
	e.submitLocked(-1)
}

func (e *Engine) submitLocked(optionIndex int) {
	if e.phase != domain.PhaseAwaitingAnswer {
		e.log.Debug("answer ignored", zap.String("phase", string(e.phase)), zap.Int("option", optionIndex))
		return
	}
	if e.inputLocked {
		e.log.Debug("duplicate answer ignored", zap.Int("question", e.questionIdx), zap.Int("option", optionIndex))
		return
	}
	e.inputLocked = true
	e.haltLocked()

	round := e.rounds[e.roundIndex]
	question := round.Questions.At(e.questionIdx)
	elapsed := e.now().Sub(e.shownAt)
	correct := optionIndex >= 0 && optionIndex == question.CorrectIndex
	points, quick := e.rules.Scoring.Score(correct, elapsed)

	p := e.participants[e.current]
	p.Score += points
	p.QuestionsAnswered++
	if p.RoundScores != nil {
		p.RoundScores[string(round.Name)] += points
	}

	outcome := domain.AnswerOutcome{
		QuestionIndex:  e.questionIdx,
		ParticipantID:  p.ID,
		OptionIndex:    optionIndex,
		Correct:        correct,
		TimedOut:       optionIndex == -1,
		Quick:          quick,
		Awarded:        points,
		ElapsedSeconds: elapsed.Seconds(),
	}
	e.stats.record(outcome)
	e.lastResult = &outcome
	e.turns.Answered()
	e.phase = domain.PhaseScored
	e.broadcastLocked()

	if !e.cfg.AutoAdvance {
		return
	}
	if e.cfg.PresentationDelay <= 0 {
		e.advanceLocked()
		return
	}
	epoch := e.epoch
	e.stopPending = e.schedule(e.cfg.PresentationDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if epoch != e.epoch || e.phase != domain.PhaseScored {
			return
		}
		e.stopPending = nil
		e.advanceLocked()
	})
}

func (e *Engine) advanceLocked() {
	e.haltLocked()
	e.questionIdx++
	if e.questionIdx < e.rounds[e.roundIndex].Questions.Len() {
		e.showQuestionLocked()
		return
	}
	if e.roundIndex+1 < len(e.rounds) {
		e.phase = domain.PhaseRoundOver
		e.broadcastLocked()
		e.enterRoundLocked(e.roundIndex + 1)
		return
	}
	e.completeLocked()
}

func (e *Engine) completeLocked() {
	e.haltLocked()
	e.phase = domain.PhaseComplete

	participants := e.participantsLocked()
	summary := buildSummary(Rank(participants), e.stats.stats(e.rounds, participants))
	summary.GameID = e.cfg.GameID
	summary.Variant = string(e.cfg.Variant)
	summary.Difficulty = e.cfg.Difficulty
	for _, r := range e.rounds {
		summary.TotalQuestions += r.Questions.Len()
	}
	e.summary = &summary

	e.log.Info("game complete",
		zap.String("game_id", e.cfg.GameID),
		zap.String("winner", summary.Winner),
		zap.Int("score", summary.Score),
		zap.Bool("draw", summary.Draw),
	)
	e.broadcastLocked()
}

func (e *Engine) participantsLocked() []domain.Participant {
	out := make([]domain.Participant, len(e.participants))
	for i, p := range e.participants {
		out[i] = p.Clone()
	}
	return out
}

func (e *Engine) snapshotLocked() domain.SessionState {
	state := domain.SessionState{
		GameID:               e.cfg.GameID,
		Variant:              string(e.cfg.Variant),
		Phase:                e.phase,
		RoundIndex:           e.roundIndex,
		QuestionIndex:        e.questionIdx,
		CurrentParticipantID: e.current,
		TimerLevel:           domain.TimerNormal,
		InputLocked:          e.inputLocked,
		Participants:         e.participantsLocked(),
	}
	if e.lastResult != nil {
		result := *e.lastResult
		state.LastResult = &result
	}
	if e.phase == domain.PhaseIdle || e.roundIndex >= len(e.rounds) {
		return state
	}

	round := e.rounds[e.roundIndex]
	state.Round = round.Name
	state.QuestionCount = round.Questions.Len()
	if e.phase != domain.PhaseAwaitingAnswer && e.phase != domain.PhaseScored {
		return state
	}

	q := round.Questions.At(e.questionIdx)
	view := &domain.QuestionView{ID: q.ID, Text: q.Text, Options: q.Options, CorrectIndex: -1, Icon: q.Icon}
	if e.phase == domain.PhaseScored {
		view.CorrectIndex = q.CorrectIndex
	} else {
		state.TimeRemaining = e.remaining
		state.TimerLevel = e.rules.Thresholds.Classify(e.remaining)
	}
	state.Question = view
	return state
}

func (e *Engine) broadcastLocked() {
	state := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- state:
		default:
			// drop the oldest snapshot so a slow reader never blocks the game
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}
