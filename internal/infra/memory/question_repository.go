package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"school-trivia/internal/domain"
)

// QuestionLoader fetches a question bank from a backing store (file, database).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error)
}

// QuestionRepository caches question banks with TTL to avoid repeated loads.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedBank
}

type cachedBank struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error) {
	if set, ok := r.lookup(bankID); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if set, ok := r.lookup(bankID); ok {
			return set, nil
		}
		set, err := r.loader.LoadQuestions(ctx, bankID)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		r.mu.Lock()
		r.cache[bankID] = cachedBank{set: set, expiresAt: r.clock().Add(r.ttlWithJitterLocked())}
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

// Invalidate drops a cached bank, e.g. after an import.
func (r *QuestionRepository) Invalidate(bankID string) {
	r.mu.Lock()
	delete(r.cache, bankID)
	r.mu.Unlock()
}

func (r *QuestionRepository) lookup(bankID string) (domain.QuestionSet, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[bankID]
	if !ok || !entry.expiresAt.After(now) {
		return domain.QuestionSet{}, false
	}
	return entry.set, true
}

func (r *QuestionRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter spreads expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader serves banks from an in-memory map (tests, demos and the
// built-in sample bank).
type StaticQuestionLoader struct {
	banks map[string][]domain.Question
}

func NewStaticQuestionLoader(banks map[string][]domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{banks: banks}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, bankID string) (domain.QuestionSet, error) {
	raw, ok := l.banks[bankID]
	if !ok {
		return domain.QuestionSet{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	return domain.LoadQuestions(raw)
}
