package validation

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"strings"
	"unicode/utf8"
)

const (
	MinQuestionCount    = 1
	MaxQuestionCount    = 50
	MaxTopicLength      = 200
	MaxDifficultyLength = 50
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request
func (v *Validator) ValidateGenerateQuizRequest(req dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuizType) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_type"))
	} else if _, err := domain.ParseQuizType(req.QuizType); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("quiz_type", req.QuizType))
	}

	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if n := utf8.RuneCountInString(req.Difficulty); n > MaxDifficultyLength {
		errors = append(errors, domain.NewOutOfRangeError("difficulty", n, 1, MaxDifficultyLength))
	}

	if req.QuestionCount < MinQuestionCount || req.QuestionCount > MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("question_count", req.QuestionCount, MinQuestionCount, MaxQuestionCount))
	}

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(req.Topic); n > MaxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, MaxTopicLength))
	}

	return errors
}
