package dto

import "quiz-forge/internal/domain"

// GenerateQuizRequest is the body of POST /generate
// @Description Quiz generation parameters
type GenerateQuizRequest struct {
	QuizType      string `json:"quiz_type" example:"MCQ"`
	Difficulty    string `json:"difficulty" example:"easy"`
	QuestionCount int    `json:"question_count" example:"5"`
	Topic         string `json:"topic" example:"geography"`
}

// ToDomain converts the request after validation; QuizType must already be parseable.
func (r GenerateQuizRequest) ToDomain() (domain.QuizRequest, error) {
	quizType, err := domain.ParseQuizType(r.QuizType)
	if err != nil {
		return domain.QuizRequest{}, err
	}
	return domain.QuizRequest{
		QuizType:      quizType,
		Difficulty:    r.Difficulty,
		QuestionCount: r.QuestionCount,
		Topic:         r.Topic,
	}, nil
}

// QuizResponse wraps the generated questions
// @Description Generated quiz
type QuizResponse struct {
	QuizID string                 `json:"quiz_id,omitempty"`
	Quiz   []*domain.QuizQuestion `json:"quiz" swaggertype:"array,object"`
}

// NewQuizResponse builds the response body from a domain result.
func NewQuizResponse(result *domain.QuizResult) QuizResponse {
	questions := result.Questions
	if questions == nil {
		questions = []*domain.QuizQuestion{}
	}
	return QuizResponse{QuizID: result.ID, Quiz: questions}
}

// PingResponse is returned by GET /ping
type PingResponse struct {
	Status string `json:"status" example:"ok"`
}
