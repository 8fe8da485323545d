package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"school-trivia/internal/domain"
	"school-trivia/internal/engine"
)

// SessionRepository abstracts where hosted games live (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(gameID string, create func() *Game) *Game
	Get(gameID string) (*Game, bool)
	DeleteIfEmpty(gameID string)
}

// QuestionRepository loads question banks (from cache/backing store).
type QuestionRepository interface {
	GetQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error)
}

// LeaderboardStore keeps the best finished games across sessions.
type LeaderboardStore interface {
	Add(ctx context.Context, entry domain.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// ResultStore keeps per-participant results for review.
type ResultStore interface {
	Save(ctx context.Context, record domain.ResultRecord) error
	List(ctx context.Context, difficulty domain.Difficulty) ([]domain.ResultRecord, error)
	Clear(ctx context.Context) error
}

// Settings are the service-wide game defaults.
type Settings struct {
	BankID            string
	TimerSeconds      int
	PresentationDelay time.Duration
	QuickThreshold    time.Duration
	AutoAdvance       bool
	Shuffle           bool
	LeaderboardSize   int
}

// StartRequest describes a new game.
type StartRequest struct {
	GameID     string
	Variant    string
	Names      []string
	Difficulty domain.Difficulty
	// BankID overrides Settings.BankID when set.
	BankID string
}

// ServiceOption customizes a GameService.
type ServiceOption func(*GameService)

func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *GameService) { s.log = log }
}

// WithEngineOptions passes options to every engine the service creates.
func WithEngineOptions(opts ...engine.Option) ServiceOption {
	return func(s *GameService) { s.engineOpts = append(s.engineOpts, opts...) }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *GameService) { s.now = now }
}

// WithRand seeds question shuffling.
func WithRand(rng *rand.Rand) ServiceOption {
	return func(s *GameService) { s.rng = rng }
}

// GameService contains the game use cases: hosting engines by ID, feeding them
// question banks and persisting finished games.
type GameService struct {
	sessions    SessionRepository
	questions   QuestionRepository
	leaderboard LeaderboardStore
	results     ResultStore
	settings    Settings

	log        *zap.Logger
	engineOpts []engine.Option
	now        func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewGameService(sessions SessionRepository, questions QuestionRepository, leaderboard LeaderboardStore, results ResultStore, settings Settings, opts ...ServiceOption) *GameService {
	if settings.LeaderboardSize <= 0 {
		settings.LeaderboardSize = 10
	}
	s := &GameService{
		sessions:    sessions,
		questions:   questions,
		leaderboard: leaderboard,
		results:     results,
		settings:    settings,
		log:         zap.NewNop(),
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns the game with id, creating an idle one if needed, and counts
// the caller as a viewer until Leave.
func (s *GameService) Open(gameID string) *Game {
	if gameID == "" {
		gameID = uuid.NewString()
	}
	game := s.getOrCreate(gameID)
	game.attach()
	return game
}

// Leave drops a viewer and discards the game once nobody watches it.
func (s *GameService) Leave(gameID string) {
	game, ok := s.sessions.Get(gameID)
	if !ok {
		return
	}
	game.detach()
	if game.IsEmpty() {
		s.sessions.DeleteIfEmpty(gameID)
	}
}

// Start loads the question bank, builds the rounds for the variant and begins
// the game. It returns the game ID.
func (s *GameService) Start(ctx context.Context, req StartRequest) (string, error) {
	variant, err := engine.ParseVariant(req.Variant)
	if err != nil {
		return "", err
	}
	rules, err := engine.RulesFor(variant, s.settings.QuickThreshold)
	if err != nil {
		return "", err
	}
	if req.Difficulty != domain.DifficultyAll && !req.Difficulty.Valid() {
		return "", domain.InvalidConfig("unknown difficulty %q", req.Difficulty)
	}

	bankID := req.BankID
	if bankID == "" {
		bankID = s.settings.BankID
	}
	set, err := s.questions.GetQuestions(ctx, bankID)
	if err != nil {
		return "", fmt.Errorf("load bank %s: %w", bankID, err)
	}

	gameID := req.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}
	game := s.getOrCreate(gameID)

	cfg := engine.Config{
		GameID:            gameID,
		Variant:           variant,
		TimerSeconds:      s.settings.TimerSeconds,
		QuickThreshold:    s.settings.QuickThreshold,
		AutoAdvance:       s.settings.AutoAdvance,
		PresentationDelay: s.settings.PresentationDelay,
		Difficulty:        req.Difficulty,
	}
	if err := game.engine.Begin(s.buildRounds(rules, set, req.Difficulty), req.Names, cfg); err != nil {
		return "", err
	}
	game.rearm()
	return gameID, nil
}

// Answer submits the option chosen by the participant on turn.
func (s *GameService) Answer(gameID string, optionIndex int) error {
	game, err := s.game(gameID)
	if err != nil {
		return err
	}
	game.engine.SubmitAnswer(optionIndex)
	return nil
}

// Next moves past a scored question.
func (s *GameService) Next(gameID string) error {
	game, err := s.game(gameID)
	if err != nil {
		return err
	}
	game.engine.Advance()
	return nil
}

// Skip passes the current question without scoring it.
func (s *GameService) Skip(gameID string) error {
	game, err := s.game(gameID)
	if err != nil {
		return err
	}
	game.engine.Skip()
	return nil
}

// Restart abandons the running game; the game ID stays usable for Start.
func (s *GameService) Restart(gameID string) error {
	game, err := s.game(gameID)
	if err != nil {
		return err
	}
	game.engine.Reset()
	game.rearm()
	return nil
}

// State returns the current snapshot of a game.
func (s *GameService) State(gameID string) (domain.SessionState, error) {
	game, err := s.game(gameID)
	if err != nil {
		return domain.SessionState{}, err
	}
	return game.engine.State(), nil
}

// Summary returns the final summary once the game is complete.
func (s *GameService) Summary(gameID string) (domain.Summary, bool) {
	game, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Summary{}, false
	}
	return game.engine.Summary()
}

// Subscribe returns a channel that receives game snapshots.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe(_ context.Context, gameID string) (<-chan domain.SessionState, func(), error) {
	game, err := s.game(gameID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := game.engine.Subscribe()
	return ch, cancel, nil
}

// Leaderboard returns the best finished games, highest score first.
func (s *GameService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.leaderboard.Top(ctx, s.settings.LeaderboardSize)
}

// Results lists stored results; DifficultyAll or unset lists everything.
func (s *GameService) Results(ctx context.Context, difficulty domain.Difficulty) ([]domain.ResultRecord, error) {
	return s.results.List(ctx, difficulty)
}

// ClearResults removes every stored result.
func (s *GameService) ClearResults(ctx context.Context) error {
	return s.results.Clear(ctx)
}

func (s *GameService) game(gameID string) (*Game, error) {
	game, ok := s.sessions.Get(gameID)
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

func (s *GameService) getOrCreate(gameID string) *Game {
	game := s.sessions.GetOrCreate(gameID, func() *Game {
		opts := append([]engine.Option{engine.WithLogger(s.log.With(zap.String("game_id", gameID)))}, s.engineOpts...)
		return NewGame(gameID, opts...)
	})
	game.watch(s.record)
	return game
}

// buildRounds cuts the bank into the rounds the variant plays.
func (s *GameService) buildRounds(rules engine.Rules, set domain.QuestionSet, difficulty domain.Difficulty) []domain.Round {
	if difficulty != domain.DifficultyUnset {
		set = set.FilterByDifficulty(difficulty)
	}
	if rules.RoundBased {
		rounds := make([]domain.Round, 0, len(domain.HeadToHeadRounds))
		for _, name := range domain.HeadToHeadRounds {
			rounds = append(rounds, domain.Round{
				Name:      name,
				Questions: set.FilterByCategory(string(name)).SortedByOrder(),
			})
		}
		return rounds
	}

	ordered := set.SortedByOrder()
	if s.settings.Shuffle {
		s.rngMu.Lock()
		ordered = ordered.Shuffle(s.rng)
		s.rngMu.Unlock()
	}
	return []domain.Round{{Questions: ordered}}
}

// record persists a finished game once: the winner goes to the leaderboard and
// every participant gets a result record.
func (s *GameService) record(game *Game) {
	summary, ok := game.engine.Summary()
	if !ok || summary.TotalQuestions == 0 {
		return
	}
	if !game.claimRecord() {
		return
	}
	rules := game.engine.Rules()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := s.now()
	log := s.log.With(zap.String("game_id", summary.GameID))
	entry := domain.LeaderboardEntry{
		ID:              uuid.NewString(),
		ParticipantName: summary.Winner,
		Score:           summary.Score,
		Stats:           summary.Stats,
		Date:            now,
	}
	if err := s.leaderboard.Add(ctx, entry); err != nil {
		log.Error("save leaderboard entry", zap.Error(err))
	}

	for _, standing := range summary.Standings {
		p := standing.Participant
		record := domain.ResultRecord{
			ID:              uuid.NewString(),
			GameID:          summary.GameID,
			ParticipantName: p.Name,
			Score:           p.Score,
			TotalQuestions:  p.QuestionsAnswered,
			Percentage:      engine.Percentage(p.Score, p.QuestionsAnswered, rules.Scoring.MaxPoints()),
			Difficulty:      summary.Difficulty,
			ResultType:      rules.ResultType,
			CreatedAt:       now,
		}
		if err := s.results.Save(ctx, record); err != nil {
			log.Error("save result", zap.String("participant", p.Name), zap.Error(err))
		}
	}
	log.Info("game recorded", zap.String("winner", summary.Winner), zap.Int("results", len(summary.Standings)))
}
