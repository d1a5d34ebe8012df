package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
)

// ParseQuizQuestions decodes the model reply as a JSON array of question objects.
// Field-level schema is not enforced: every object is accepted as-is.
// Anything that is not an array of objects yields CodeInvalidUpstreamResponse.
func ParseQuizQuestions(raw string) ([]*domain.QuizQuestion, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, domain.NewInvalidUpstreamResponseError(fmt.Errorf("empty response"))
	}
	if trimmed[0] != '[' {
		return nil, domain.NewInvalidUpstreamResponseError(fmt.Errorf("top-level value is not an array"))
	}

	var questions []*domain.QuizQuestion
	if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
		return nil, domain.NewInvalidUpstreamResponseError(err)
	}
	for i, q := range questions {
		if q == nil {
			return nil, domain.NewInvalidUpstreamResponseError(fmt.Errorf("element %d is null", i))
		}
	}
	if questions == nil {
		questions = []*domain.QuizQuestion{}
	}
	return questions, nil
}
