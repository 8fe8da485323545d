package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"school-trivia/internal/domain"
)

// QuestionLoader fetches a question bank from a backing store (file, database).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error)
}

// QuestionRepository caches question banks in Redis and falls back to a loader
// on cache miss. Banks are stored as one JSON document:
// SET bank:{bankID}:questions [...]
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	log    *zap.Logger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration, log *zap.Logger) *QuestionRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, bankID string) (domain.QuestionSet, error) {
	if set, ok := r.cached(ctx, bankID); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := r.cached(ctx, bankID); ok {
			return set, nil
		}

		set, err := r.loader.LoadQuestions(ctx, bankID)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		data, err := json.Marshal(set.Questions())
		if err != nil {
			return domain.QuestionSet{}, err
		}
		if err := r.client.Set(ctx, r.key(bankID), data, r.ttlWithJitter()).Err(); err != nil {
			r.log.Warn("cache question bank", zap.String("bank", bankID), zap.Error(err))
		}
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

// Invalidate drops a cached bank.
func (r *QuestionRepository) Invalidate(ctx context.Context, bankID string) error {
	return r.client.Del(ctx, r.key(bankID)).Err()
}

func (r *QuestionRepository) cached(ctx context.Context, bankID string) (domain.QuestionSet, bool) {
	data, err := r.client.Get(ctx, r.key(bankID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("read cached question bank", zap.String("bank", bankID), zap.Error(err))
		}
		return domain.QuestionSet{}, false
	}
	var raw []domain.Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.QuestionSet{}, false
	}
	set, err := domain.LoadQuestions(raw)
	if err != nil {
		return domain.QuestionSet{}, false
	}
	return set, true
}

func (r *QuestionRepository) key(bankID string) string {
	return "bank:" + bankID + ":questions"
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
