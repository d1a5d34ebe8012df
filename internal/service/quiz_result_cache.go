package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"time"

	"go.uber.org/zap"
)

// ErrQuizResultNotFound is returned when no generated quiz is stored under an id.
var ErrQuizResultNotFound = errors.New("quiz result not found in cache")

// QuizResultCache keeps generated quizzes so clients can fetch them again by id.
type QuizResultCache interface {
	Put(ctx context.Context, result *domain.QuizResult) error
	Get(ctx context.Context, quizID string) (*domain.QuizResult, error)
	Enabled() bool
}

type quizResultCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuizResultCache returns a no-op cache when c is nil.
func NewQuizResultCache(c domain.Cache, ttl time.Duration) QuizResultCache {
	if c == nil {
		logger.Get().Warn("QuizResultCache initialized with nil cache. Generated quizzes will not be stored.")
		return &noopQuizResultCache{}
	}
	return &quizResultCacheImpl{cache: c, ttl: ttl}
}

func (s *quizResultCacheImpl) generateKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "result", quizID)
}

func (s *quizResultCacheImpl) Enabled() bool { return true }

// Put stores the result under result.ID.
func (s *quizResultCacheImpl) Put(ctx context.Context, result *domain.QuizResult) error {
	if result == nil || result.ID == "" {
		return domain.NewInvalidInputError("cannot cache a quiz result without an id")
	}

	key := s.generateKey(result.ID)
	dataBytes, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to marshal quiz result for caching", zap.Error(err), zap.String("quiz_id", result.ID))
		return domain.NewInternalError("failed to marshal quiz result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Error("Failed to cache quiz result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set quiz result to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached quiz result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get loads a stored result, returning ErrQuizResultNotFound on a miss.
func (s *quizResultCacheImpl) Get(ctx context.Context, quizID string) (*domain.QuizResult, error) {
	key := s.generateKey(quizID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz result cache miss", zap.String("key", key))
			return nil, ErrQuizResultNotFound
		}
		logger.Get().Error("Failed to get quiz result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz result from cache for key %s", key), err)
	}
	if dataString == "" {
		return nil, ErrQuizResultNotFound
	}

	var result domain.QuizResult
	if err := json.Unmarshal([]byte(dataString), &result); err != nil {
		logger.Get().Error("Failed to unmarshal quiz result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz result from cache for key %s", key), err)
	}
	return &result, nil
}

type noopQuizResultCache struct{}

func (s *noopQuizResultCache) Enabled() bool { return false }

func (s *noopQuizResultCache) Put(ctx context.Context, result *domain.QuizResult) error {
	return nil
}

func (s *noopQuizResultCache) Get(ctx context.Context, quizID string) (*domain.QuizResult, error) {
	return nil, ErrQuizResultNotFound
}
