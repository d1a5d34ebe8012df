package service

import (
	"context"
	"errors"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"
	"time"

	"go.uber.org/zap"
)

// QuizGenerationService defines the quiz operations exposed over HTTP
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.QuizResult, error)
	GetQuiz(ctx context.Context, quizID string) (*domain.QuizResult, error)
}

type quizGenerationService struct {
	client         domain.CompletionClient
	shuffler       *IntegrityShuffler
	results        QuizResultCache
	timeout        time.Duration
	missingSetting string
}

// NewQuizGenerationService wires the generation pipeline. When llmCfg needs an
// API key that is absent, client may be nil: every call then fails with
// CodeConfigurationMissing before anything is sent upstream.
func NewQuizGenerationService(
	client domain.CompletionClient,
	shuffler *IntegrityShuffler,
	results QuizResultCache,
	llmCfg config.LLMConfig,
) QuizGenerationService {
	if shuffler == nil {
		shuffler = NewIntegrityShuffler(nil)
	}
	if results == nil {
		results = NewQuizResultCache(nil, 0)
	}
	svc := &quizGenerationService{
		client:   client,
		shuffler: shuffler,
		results:  results,
		timeout:  llmCfg.Timeout,
	}
	if llmCfg.APIKeyMissing() {
		svc.missingSetting = "OPENAI_API_KEY"
	}
	return svc
}

// GenerateQuiz runs prompt, completion, validation and shuffle in that order.
// Any failure aborts the request; no partial quiz is returned.
func (s *quizGenerationService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.QuizResult, error) {
	l := logger.Get()

	if s.missingSetting != "" || s.client == nil {
		setting := s.missingSetting
		if setting == "" {
			setting = "completion client"
		}
		l.Error("Refusing to generate quiz: configuration missing", zap.String("setting", setting))
		return nil, domain.NewConfigurationMissingError(setting)
	}

	prompt := BuildQuizPrompt(req)
	l.Debug("Built quiz prompt",
		zap.String("topic", req.Topic),
		zap.String("quiz_type", string(req.QuizType)),
		zap.Int("question_count", req.QuestionCount))

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		l.Error("Completion call failed", zap.Error(err), zap.String("topic", req.Topic))
		return nil, err
	}
	l.Debug("Raw completion received", zap.String("raw_response", raw))

	questions, err := ParseQuizQuestions(raw)
	if err != nil {
		l.Error("Upstream response is not a JSON array of questions", zap.Error(err), zap.String("raw_response", raw))
		return nil, err
	}
	if len(questions) != req.QuestionCount {
		l.Warn("Upstream returned a different number of questions than requested",
			zap.Int("requested", req.QuestionCount),
			zap.Int("received", len(questions)))
	}

	s.shuffler.Shuffle(questions)

	result := &domain.QuizResult{Questions: questions}
	if s.results.Enabled() {
		result.ID = util.NewULID()
		if err := s.results.Put(ctx, result); err != nil {
			l.Warn("Failed to store generated quiz, returning it without an id", zap.Error(err))
			result.ID = ""
		}
	}

	l.Info("Generated quiz",
		zap.String("quiz_id", result.ID),
		zap.String("topic", req.Topic),
		zap.Int("questions", len(questions)))
	return result, nil
}

func (s *quizGenerationService) complete(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return "", err
		}
		return "", domain.NewUpstreamUnavailableError(err)
	}
	return raw, nil
}

// GetQuiz returns a quiz previously produced by GenerateQuiz.
func (s *quizGenerationService) GetQuiz(ctx context.Context, quizID string) (*domain.QuizResult, error) {
	if !util.IsValidULID(quizID) {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("quiz_id", quizID)}
	}

	result, err := s.results.Get(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrQuizResultNotFound) {
			return nil, domain.NewNotFoundError("quiz not found")
		}
		return nil, err
	}
	return result, nil
}
